package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ChainPort/internal/chain"
	"ChainPort/internal/connector"
	"ChainPort/internal/observability/metrics"
	"ChainPort/internal/session"
	"ChainPort/internal/storage/mysql"
	"ChainPort/internal/transport"
)

// Server 负责暴露只读 REST 接口，供宿主应用查询链注册表、
// 传输回退序列与会话配置。
type Server struct {
	addr     string
	registry *chain.Registry
	env      connector.Environment
	creds    transport.Credentials
	history  mysql.HistoryRepository
}

// NewServer 构造 API 服务实例。history 允许为 nil，此时探测历史
// 接口返回空列表。
func NewServer(addr string, registry *chain.Registry, env connector.Environment, creds transport.Credentials, history mysql.HistoryRepository) *Server {
	return &Server{addr: addr, registry: registry, env: env, creds: creds, history: history}
}

// Start 启动 HTTP 服务，直到上下文取消或出现错误。
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           withContext(ctx, s.Handler()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 启动服务器并监听关闭信号。
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Handler 返回完整路由，测试可以直接挂到 httptest 上。
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", instrument("healthz", s.handleHealthz))
	mux.HandleFunc("/api/v1/chains", instrument("chains", s.handleChains))
	mux.HandleFunc("/api/v1/chains/", instrument("chain_detail", s.handleChainDetail))
	mux.HandleFunc("/api/v1/session", instrument("session", s.handleSession))
	return mux
}

// chainView 在链描述符之上附加展示名与实时状态。
type chainView struct {
	chain.Descriptor
	DisplayName string       `json:"display_name"`
	LiveStatus  chain.Status `json:"live_status"`
}

// chainDetail 额外携带该链解析出的传输回退序列与最近探测记录。
type chainDetail struct {
	chainView
	Transports []transport.Entry   `json:"transports"`
	Probes     []mysql.ProbeRecord `json:"probes,omitempty"`
}

type connectorView struct {
	VariantID   string                 `json:"variant_id"`
	DisplayName string                 `json:"display_name"`
	Requires    []connector.Capability `json:"requires"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "仅支持 GET")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleChains 列出注册表中的全部链，可用 category 查询参数过滤。
func (s *Server) handleChains(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "仅支持 GET")
		return
	}

	var descriptors []chain.Descriptor
	if raw := r.URL.Query().Get("category"); raw != "" {
		category := chain.Category(raw)
		valid := false
		for _, known := range chain.Categories {
			if category == known {
				valid = true
				break
			}
		}
		if !valid {
			writeError(w, http.StatusBadRequest, "未知的链类别: "+raw)
			return
		}
		descriptors = s.registry.ListByCategory(category)
	} else {
		descriptors = s.registry.All()
	}

	views := make([]chainView, 0, len(descriptors))
	for _, d := range descriptors {
		views = append(views, s.viewOf(d))
	}
	writeJSON(w, http.StatusOK, views)
}

// handleChainDetail 返回单条链的描述符、实时状态、传输序列与探测历史。
func (s *Server) handleChainDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "仅支持 GET")
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/chains/")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "非法的链 ID: "+raw)
		return
	}

	descriptor, ok := s.registry.Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "链 "+raw+" 不在注册表中")
		return
	}

	detail := chainDetail{chainView: s.viewOf(descriptor)}
	if resolved, err := transport.Resolve(s.registry, id, s.creds); err == nil {
		detail.Transports = resolved.Entries
	}
	if s.history != nil {
		if probes, err := s.history.Recent(r.Context(), id, 10); err == nil {
			detail.Probes = probes
		}
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleSession 组装并返回当前环境下的完整会话配置。
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "仅支持 GET")
		return
	}

	cfg, err := session.Build(s.registry, s.env, s.creds)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	connectors := make([]connectorView, 0, len(cfg.Connectors))
	for _, d := range cfg.Connectors {
		connectors = append(connectors, connectorView{
			VariantID:   d.VariantID,
			DisplayName: d.DisplayName,
			Requires:    d.Requires(),
		})
	}

	writeJSON(w, http.StatusOK, struct {
		Mode       connector.Mode             `json:"mode"`
		ChainIDs   []uint64                   `json:"chain_ids"`
		Chains     []chain.Descriptor         `json:"chains"`
		Transports map[uint64]transport.Chain `json:"transports"`
		Connectors []connectorView            `json:"connectors"`
	}{
		Mode:       cfg.Mode,
		ChainIDs:   cfg.ChainIDs(),
		Chains:     cfg.Chains,
		Transports: cfg.Transports,
		Connectors: connectors,
	})
}

func (s *Server) viewOf(descriptor chain.Descriptor) chainView {
	return chainView{
		Descriptor:  descriptor,
		DisplayName: s.registry.DisplayName(descriptor.ID),
		LiveStatus:  s.registry.StatusOf(descriptor.ID),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusRecorder 捕获响应码供指标使用。
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument 为处理器挂上请求计数指标。
func instrument(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)
		metrics.ObserveHTTPRequest(name, r.Method, recorder.status)
	}
}

// withContext 确保请求处理能够感知根上下文取消。
func withContext(ctx context.Context, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-ctx.Done():
			writeError(w, http.StatusServiceUnavailable, "服务已关闭")
			return
		default:
		}
		handler.ServeHTTP(w, r)
	})
}
