// Package api exposes the subnet engine over HTTP with JSON responses.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/subnetear/subnetear/internal/ipv4"
	"github.com/subnetear/subnetear/internal/subnet"
)

// Notifier wraps notify method.
type Notifier interface {
	Notify()
}

// Handler serves the calculator endpoints and the reload hook.
type Handler struct {
	log      *zap.Logger
	notifier Notifier
	opts     *Updater
	metrics  metrics
}

// NewHandler initializes a Handler. When reg is non-nil, request metrics are
// registered on it.
func NewHandler(l *zap.Logger, n Notifier, u *Updater, reg prometheus.Registerer) (*Handler, error) {
	h := &Handler{
		log:      l,
		notifier: n,
		opts:     u,
		metrics:  noopMetrics{},
	}
	if reg != nil {
		p := newPromMetrics(nil)
		if err := reg.Register(p); err != nil {
			return nil, errors.Wrap(err, "failed to register metrics")
		}
		h.metrics = p
	}
	return h, nil
}

type subnetInfo struct {
	Subnet           string `json:"subnet"`
	Netmask          string `json:"netmask"`
	Wildcard         string `json:"wildcard"`
	Network          string `json:"network"`
	Broadcast        string `json:"broadcast"`
	FirstHost        string `json:"first_host"`
	LastHost         string `json:"last_host"`
	UsableHosts      uint64 `json:"usable_hosts"`
	MagicNumber      int    `json:"magic_number"`
	InterestingOctet int    `json:"interesting_octet"`
	MaskOctetValue   int    `json:"mask_octet_value"`
}

func toInfo(d subnet.Descriptor) subnetInfo {
	return subnetInfo{
		Subnet:           d.Subnet,
		Netmask:          d.Netmask,
		Wildcard:         d.Wildcard,
		Network:          d.Network,
		Broadcast:        d.Broadcast,
		FirstHost:        d.FirstHost,
		LastHost:         d.LastHost,
		UsableHosts:      d.UsableHosts,
		MagicNumber:      d.MagicNumber,
		InterestingOctet: d.InterestingOctet,
		MaskOctetValue:   d.MaskOctetValue,
	}
}

type splitResponse struct {
	Base      string       `json:"base"`
	NewPrefix int          `json:"new_prefix"`
	Bits      int          `json:"bits"`
	Count     int          `json:"count"`
	Truncated bool         `json:"truncated"`
	Subnets   []subnetInfo `json:"subnets"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("failed to write response", zap.Error(err))
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, err error) {
	h.log.Info("bad request", zap.Error(err))
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func queryInt(r *http.Request, key string) (int, error) {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0, errors.Errorf("bad %q parameter", key)
	}
	return v, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/describe":
		h.metrics.incRequests("describe")
		h.describe(w, r)
	case "/split":
		h.metrics.incRequests("split")
		h.split(w, r)
	case "/find":
		h.metrics.incRequests("find")
		h.find(w, r)
	case "/reload":
		h.metrics.incRequests("reload")
		h.log.Info("got reload request")
		w.WriteHeader(http.StatusOK)
		h.notifier.Notify()
		if _, err := w.Write([]byte("options will be reloaded soon\n")); err != nil {
			h.log.Warn("failed to write", zap.Error(err))
		}
	default:
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "endpoint not found"})
	}
}

func (h *Handler) describe(w http.ResponseWriter, r *http.Request) {
	n, err := ipv4.ParseCIDR(r.URL.Query().Get("net"))
	if err != nil {
		h.badRequest(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toInfo(subnet.Describe(n)))
}

func (h *Handler) split(w http.ResponseWriter, r *http.Request) {
	base, err := ipv4.ParseCIDR(r.URL.Query().Get("net"))
	if err != nil {
		h.badRequest(w, err)
		return
	}
	var s subnet.Split
	switch mode := r.URL.Query().Get("mode"); mode {
	case "count":
		n, paramErr := queryInt(r, "n")
		if paramErr != nil {
			h.badRequest(w, paramErr)
			return
		}
		s, err = subnet.ByCount(base, n)
	case "prefix":
		p, paramErr := queryInt(r, "prefix")
		if paramErr != nil {
			h.badRequest(w, paramErr)
			return
		}
		s, err = subnet.ByPrefix(base, p)
	case "hosts":
		n, paramErr := queryInt(r, "hosts")
		if paramErr != nil {
			h.badRequest(w, paramErr)
			return
		}
		s, err = subnet.ByHosts(base, n)
	default:
		h.badRequest(w, errors.Errorf("unknown mode %q", mode))
		return
	}
	if err != nil {
		h.badRequest(w, err)
		return
	}
	networks := s.Networks
	truncated := false
	if limit := h.opts.Get().Limit; limit > 0 && len(networks) > limit {
		networks = networks[:limit]
		truncated = true
	}
	infos := make([]subnetInfo, 0, len(networks))
	for _, d := range subnet.DescribeAll(networks) {
		infos = append(infos, toInfo(d))
	}
	h.writeJSON(w, http.StatusOK, splitResponse{
		Base:      base.String(),
		NewPrefix: s.NewPrefix,
		Bits:      s.Bits,
		Count:     len(s.Networks),
		Truncated: truncated,
		Subnets:   infos,
	})
}

func (h *Handler) find(w http.ResponseWriter, r *http.Request) {
	base, err := ipv4.ParseCIDR(r.URL.Query().Get("net"))
	if err != nil {
		h.badRequest(w, err)
		return
	}
	prefix, err := queryInt(r, "prefix")
	if err != nil {
		h.badRequest(w, err)
		return
	}
	addr, err := ipv4.ParseAddr(r.URL.Query().Get("ip"))
	if err != nil {
		h.badRequest(w, err)
		return
	}
	child, err := subnet.Locate(base, prefix, addr)
	if err != nil {
		if errors.Cause(err) == subnet.ErrNotInNetwork {
			h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		h.badRequest(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toInfo(subnet.Describe(child)))
}
