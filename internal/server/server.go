// Package server exposes the storefront HTTP API and the streaming chat
// endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"boutique/internal/catalog"
	"boutique/internal/clerk"
	"boutique/internal/llm"
	"boutique/internal/models"
	"boutique/internal/orders"
	"boutique/internal/retrieval"
	"boutique/internal/store"
	"boutique/internal/storefront"
)

const httpShutdownTimeout = 5 * time.Second

type Options struct {
	Provider           llm.ChatProvider
	Catalog            store.CatalogStore
	Orders             store.OrderStore
	Retrieval          retrieval.Options
	MaxDiscountPercent float64
	FulfillmentURL     string
}

type sessionEntry struct {
	session *clerk.Session
	front   *storefront.State
}

type API struct {
	opts     Options
	pipeline *retrieval.Pipeline
	orders   *orders.Service

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func New(opts Options, ordersSvc *orders.Service) *API {
	return &API{
		opts:     opts,
		pipeline: retrieval.New(opts.Catalog, catalog.Categories(), opts.Retrieval),
		orders:   ordersSvc,
		sessions: make(map[string]*sessionEntry),
	}
}

// Router wires routes with permissive CORS; the storefront UI is served from
// another origin.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	v1 := r.Group("/v1")
	v1.GET("/healthz", a.handleHealth)
	v1.GET("/products", a.handleListProducts)
	v1.POST("/catalog/seed", a.handleSeed)
	v1.POST("/chat", a.handleChat)
	v1.GET("/sessions/:id/state", a.handleSessionState)
	v1.GET("/sessions/:id/transcript", a.handleTranscript)
	v1.POST("/orders", a.handlePlaceOrder)
	v1.GET("/orders", a.handleListOrders)
	return r
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *API) handleListProducts(c *gin.Context) {
	items, err := a.opts.Catalog.ListProducts(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": items})
}

func (a *API) handleSeed(c *gin.Context) {
	if err := catalog.Seed(c.Request.Context(), a.opts.Catalog); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"seeded": len(catalog.Products)})
}

func (a *API) session(id string) (*sessionEntry, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	e, ok := a.sessions[id]
	if !ok {
		front := storefront.New()
		e = &sessionEntry{
			front: front,
			session: clerk.NewSession(id, clerk.Deps{
				Provider:           a.opts.Provider,
				Pipeline:           a.pipeline,
				Catalog:            a.opts.Catalog,
				Orders:             a.orders,
				Front:              front,
				MaxDiscountPercent: a.opts.MaxDiscountPercent,
			}),
		}
		a.sessions[id] = e
	}
	return e, id
}

// handleChat runs one model turn and streams it back as SSE: `token` events
// carry text deltas, `done` carries the turn summary, `error` a failure.
func (a *API) handleChat(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})
		return
	}
	entry, sid := a.session(req.SessionID)

	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Session-Id", sid)
	flusher, _ := w.(http.Flusher)

	prev := ""
	res, err := entry.session.Send(c.Request.Context(), req.Message, func(soFar string) {
		delta := soFar[len(prev):]
		prev = soFar
		if delta == "" {
			return
		}
		fmt.Fprintf(w, "event: token\ndata: %s\n\n", jsonEscape(delta))
		if flusher != nil {
			flusher.Flush()
		}
	})
	if err != nil {
		status := "error"
		if errors.Is(err, clerk.ErrTurnInFlight) {
			status = "busy"
		}
		payload, _ := json.Marshal(gin.H{"status": status, "message": clerk.FallbackReply})
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", payload)
		if flusher != nil {
			flusher.Flush()
		}
		return
	}
	payload, _ := json.Marshal(gin.H{"sessionId": sid, "result": res})
	fmt.Fprintf(w, "event: done\ndata: %s\n\n", payload)
	if flusher != nil {
		flusher.Flush()
	}
}

func (a *API) handleSessionState(c *gin.Context) {
	a.mu.Lock()
	e, ok := a.sessions[c.Param("id")]
	a.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}
	c.JSON(http.StatusOK, e.front.Snapshot())
}

func (a *API) handleTranscript(c *gin.Context) {
	a.mu.Lock()
	e, ok := a.sessions[c.Param("id")]
	a.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": e.session.Transcript()})
}

func (a *API) handlePlaceOrder(c *gin.Context) {
	var req struct {
		Customer models.Customer    `json:"customer"`
		Items    []models.OrderItem `json:"items"`
		Coupon   *models.Coupon     `json:"coupon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := a.orders.Commit(c.Request.Context(), orders.Request{
		Customer: req.Customer, Items: req.Items, Coupon: req.Coupon,
	})
	if err != nil {
		if errors.Is(err, orders.ErrInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("order commit failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order could not be placed"})
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (a *API) handleListOrders(c *gin.Context) {
	list, err := a.opts.Orders.ListOrders(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "orders unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// Run serves until ctx is cancelled.
func (a *API) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: a.Router()}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func jsonEscape(s string) string {
	b, _ := json.Marshal(s)
	if len(b) >= 2 {
		return string(b[1 : len(b)-1])
	}
	return string(b)
}
