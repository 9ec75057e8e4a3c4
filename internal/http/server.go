package http

import (
	"container/list"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"revenda/internal/core"
	"revenda/internal/documents"
	"revenda/internal/log"
)

// Store is the storage surface the API needs. *storage.SQLiteRepository
// satisfies it; tests plug in fakes.
type Store interface {
	CreateVeiculo(ctx context.Context, v core.Veiculo) (core.Veiculo, error)
	GetVeiculo(ctx context.Context, id int64) (core.Veiculo, error)
	ListVeiculos(ctx context.Context, somenteDisponiveis bool) ([]core.Veiculo, error)
	MarkVeiculoVendido(ctx context.Context, id int64) error
	DeleteVeiculo(ctx context.Context, id int64) error

	CreateCliente(ctx context.Context, c core.Cliente) (core.Cliente, error)
	GetCliente(ctx context.Context, id int64) (core.Cliente, error)
	GetClienteByCPF(ctx context.Context, cpf string) (core.Cliente, error)
	ListClientes(ctx context.Context) ([]core.Cliente, error)

	CreateBanco(ctx context.Context, b core.Banco) (core.Banco, error)
	GetBanco(ctx context.Context, id int64) (core.Banco, error)
	ListBancos(ctx context.Context) ([]core.Banco, error)

	CreateProposta(ctx context.Context, p core.Proposta) (core.Proposta, error)
	GetProposta(ctx context.Context, id int64) (core.Proposta, error)
	ListPropostas(ctx context.Context, status core.PropostaStatus) ([]core.Proposta, error)
	UpdatePropostaStatus(ctx context.Context, id int64, status core.PropostaStatus) error

	CreateRecibo(ctx context.Context, r core.Recibo) (core.Recibo, int64, error)
	GetRecibo(ctx context.Context, id int64) (core.Recibo, error)
	ListRecibos(ctx context.Context) ([]core.Recibo, error)
	GetDocumento(ctx context.Context, reciboID int64, tipo string) (string, time.Time, error)

	Overview(ctx context.Context) (core.Overview, error)
}

// Publisher enqueues archival jobs for issued receipts. May be nil when
// AMQP is not configured; archival then relies on the worker's periodic scan.
type Publisher interface {
	PublishDocumentoEmitido(ctx context.Context, reciboID, versao int64) error
}

// LRU cache with TTL and size-based eviction
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

func newLRUCache[T any](maxSize int, ttl time.Duration) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *lruCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

func (c *lruCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *lruCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
}

func (c *lruCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{
			lastRequest: now,
			requests:    1,
		}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

type Server struct {
	http.Server
	store       Store
	publisher   Publisher
	renderer    *documents.Renderer
	rateLimiter *rateLimiter

	overviewCache *lruCache[core.Overview]

	shutdownOnce sync.Once
}

const overviewCacheKey = "overview"

// NewServer configures routes and middleware, returning a ready-to-run server.
// publisher may be nil.
func NewServer(addr string, store Store, publisher Publisher, renderer *documents.Renderer) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:         store,
		publisher:     publisher,
		renderer:      renderer,
		rateLimiter:   newRateLimiter(),
		overviewCache: newLRUCache[core.Overview](8, 30*time.Second),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("POST /veiculos", s.withMiddleware(s.handleCreateVeiculo))
	mux.HandleFunc("GET /veiculos", s.withMiddleware(s.handleListVeiculos))
	mux.HandleFunc("GET /veiculos/{id}", s.withMiddleware(s.handleGetVeiculo))
	mux.HandleFunc("DELETE /veiculos/{id}", s.withMiddleware(s.handleDeleteVeiculo))

	mux.HandleFunc("POST /clientes", s.withMiddleware(s.handleCreateCliente))
	mux.HandleFunc("GET /clientes", s.withMiddleware(s.handleListClientes))
	mux.HandleFunc("GET /clientes/{id}", s.withMiddleware(s.handleGetCliente))

	mux.HandleFunc("POST /bancos", s.withMiddleware(s.handleCreateBanco))
	mux.HandleFunc("GET /bancos", s.withMiddleware(s.handleListBancos))

	mux.HandleFunc("POST /propostas", s.withMiddleware(s.handleCreateProposta))
	mux.HandleFunc("GET /propostas", s.withMiddleware(s.handleListPropostas))
	mux.HandleFunc("GET /propostas/{id}", s.withMiddleware(s.handleGetProposta))
	mux.HandleFunc("POST /propostas/{id}/status", s.withMiddleware(s.handleUpdatePropostaStatus))

	mux.HandleFunc("POST /recibos", s.withMiddleware(s.handleCreateRecibo))
	mux.HandleFunc("GET /recibos", s.withMiddleware(s.handleListRecibos))
	mux.HandleFunc("GET /recibos/{id}", s.withMiddleware(s.handleGetRecibo))

	mux.HandleFunc("GET /documentos/{tipo}/recibo/{id}", s.withMiddleware(s.handleDocumentoRecibo))
	mux.HandleFunc("GET /documentos/{tipo}/proposta/{id}", s.withMiddleware(s.handleDocumentoProposta))

	mux.HandleFunc("GET /overview", s.withMiddleware(s.handleOverview))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP,
			log.FieldUserAgent, r.Header.Get("User-Agent"))

		// Rate-limit mutating requests only
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "limite de requisições excedido, tente novamente em instantes")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatus, rw.statusCode,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

type ctxKey string

const ctxKeyRequestID ctxKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
