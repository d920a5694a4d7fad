package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/subnetear/subnetear/internal/testutil"
)

type notifierFunc func()

func (f notifierFunc) Notify() { f() }

func testHandler(t *testing.T, limit int, n Notifier) *httptest.Server {
	t.Helper()
	if n == nil {
		n = notifierFunc(func() {})
	}
	h, err := NewHandler(zap.NewNop(), n, NewUpdater(Options{Limit: limit}), nil)
	if err != nil {
		t.Fatal(err)
	}
	return httptest.NewServer(h)
}

func get(t *testing.T, url string, wantCode int, v interface{}) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != wantCode {
		t.Fatalf("got status %d, want %d", res.StatusCode, wantCode)
	}
	if v != nil {
		if err = json.NewDecoder(res.Body).Decode(v); err != nil {
			t.Fatal(err)
		}
	}
}

func TestHandlerDescribe(t *testing.T) {
	s := testHandler(t, 0, nil)
	defer s.Close()
	t.Run("OK", func(t *testing.T) {
		var info subnetInfo
		get(t, s.URL+"/describe?net=192.168.1.128/27", http.StatusOK, &info)
		if info.Broadcast != "192.168.1.159" || info.UsableHosts != 30 {
			t.Errorf("bad descriptor %+v", info)
		}
	})
	t.Run("BadNet", func(t *testing.T) {
		get(t, s.URL+"/describe?net=bogus", http.StatusBadRequest, nil)
	})
}

func TestHandlerSplit(t *testing.T) {
	s := testHandler(t, 0, nil)
	defer s.Close()
	t.Run("Count", func(t *testing.T) {
		var res splitResponse
		get(t, s.URL+"/split?mode=count&net=10.0.0.0/24&n=4", http.StatusOK, &res)
		if res.NewPrefix != 26 || res.Bits != 2 || res.Count != 4 {
			t.Errorf("bad response %+v", res)
		}
		if len(res.Subnets) != 4 || res.Subnets[1].Subnet != "10.0.0.64/26" {
			t.Errorf("bad subnets %+v", res.Subnets)
		}
	})
	t.Run("Hosts", func(t *testing.T) {
		var res splitResponse
		get(t, s.URL+"/split?mode=hosts&net=172.16.0.0/20&hosts=30", http.StatusOK, &res)
		if res.NewPrefix != 27 || res.Bits != 5 {
			t.Errorf("bad response %+v", res)
		}
	})
	t.Run("Prefix", func(t *testing.T) {
		var res splitResponse
		get(t, s.URL+"/split?mode=prefix&net=192.168.1.0/24&prefix=27", http.StatusOK, &res)
		if res.Count != 8 {
			t.Errorf("bad response %+v", res)
		}
	})
	t.Run("EngineError", func(t *testing.T) {
		get(t, s.URL+"/split?mode=prefix&net=192.168.1.0/24&prefix=16", http.StatusBadRequest, nil)
	})
	t.Run("UnknownMode", func(t *testing.T) {
		get(t, s.URL+"/split?mode=magic&net=192.168.1.0/24", http.StatusBadRequest, nil)
	})
	t.Run("BadParam", func(t *testing.T) {
		get(t, s.URL+"/split?mode=count&net=192.168.1.0/24&n=x", http.StatusBadRequest, nil)
	})
}

func TestHandlerSplitTruncated(t *testing.T) {
	s := testHandler(t, 2, nil)
	defer s.Close()
	var res splitResponse
	get(t, s.URL+"/split?mode=prefix&net=192.168.1.0/24&prefix=27", http.StatusOK, &res)
	if !res.Truncated || res.Count != 8 || len(res.Subnets) != 2 {
		t.Errorf("bad response %+v", res)
	}
}

func TestHandlerFind(t *testing.T) {
	s := testHandler(t, 0, nil)
	defer s.Close()
	t.Run("Hit", func(t *testing.T) {
		var info subnetInfo
		get(t, s.URL+"/find?net=192.168.1.0/24&prefix=27&ip=192.168.1.130", http.StatusOK, &info)
		if info.Subnet != "192.168.1.128/27" {
			t.Errorf("bad subnet %s", info.Subnet)
		}
	})
	t.Run("Outside", func(t *testing.T) {
		get(t, s.URL+"/find?net=192.168.1.0/24&prefix=27&ip=10.0.0.1", http.StatusNotFound, nil)
	})
	t.Run("Underflow", func(t *testing.T) {
		get(t, s.URL+"/find?net=192.168.1.0/24&prefix=16&ip=192.168.1.1", http.StatusBadRequest, nil)
	})
}

func TestHandlerReload(t *testing.T) {
	notified := false
	s := testHandler(t, 0, notifierFunc(func() { notified = true }))
	defer s.Close()
	get(t, s.URL+"/reload", http.StatusOK, nil)
	if !notified {
		t.Error("not notified")
	}
	get(t, s.URL+"/random", http.StatusNotFound, nil)
}

func TestHandlerLogs(t *testing.T) {
	l, logs := testutil.ObservedLogger()
	h, err := NewHandler(l, notifierFunc(func() {}), NewUpdater(Options{}), nil)
	if err != nil {
		t.Fatal(err)
	}
	s := httptest.NewServer(h)
	defer s.Close()
	get(t, s.URL+"/describe?net=10.0.0.0/8", http.StatusOK, nil)
	get(t, s.URL+"/split?mode=prefix&net=10.0.0.0/8&prefix=10", http.StatusOK, nil)
	testutil.EnsureNoErrors(t, logs)
}

func TestHandlerMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	h, err := NewHandler(zap.NewNop(), notifierFunc(func() {}), NewUpdater(Options{}), reg)
	if err != nil {
		t.Fatal(err)
	}
	s := httptest.NewServer(h)
	defer s.Close()
	get(t, s.URL+"/describe?net=10.0.0.0/8", http.StatusOK, nil)
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "subnetear_api_requests_count" {
			found = true
		}
	}
	if !found {
		t.Error("request counter not registered")
	}
}
