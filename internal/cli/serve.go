package cli

import (
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/subnetear/subnetear/internal/api"
	"github.com/subnetear/subnetear/internal/reload"
)

func apiOptions(v *viper.Viper) api.Options {
	return api.Options{Limit: v.GetInt("display.limit")}
}

func runServe(v *viper.Viper) error {
	l := getLogger(v)
	if cfgPath := v.ConfigFileUsed(); len(cfgPath) > 0 {
		l.Info("config file used", zap.String("path", cfgPath))
	} else {
		l.Info("default configuration used")
	}

	reg := prometheus.NewPedanticRegistry()
	var registerer prometheus.Registerer
	if prometheusAddr := v.GetString("server.prometheus.addr"); prometheusAddr != "" {
		registerer = reg
		l.Warn("running prometheus metrics", zap.String("addr", prometheusAddr))
		go func() {
			promHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{
				ErrorLog:      zap.NewStdLog(l),
				ErrorHandling: promhttp.HTTPErrorOnError,
			})
			if listenErr := http.ListenAndServe(prometheusAddr, promHandler); listenErr != nil {
				l.Error("prometheus failed to listen",
					zap.String("addr", prometheusAddr),
					zap.Error(listenErr),
				)
			}
		}()
	} else {
		v.SetDefault(keyPrometheusActive, false)
		if v.GetBool(keyPrometheusActive) {
			l.Warn("ignoring " + keyPrometheusActive + " because prometheus http endpoint is not configured")
		}
	}
	if pprofAddr := v.GetString("server.pprof"); pprofAddr != "" {
		l.Warn("running pprof", zap.String("addr", pprofAddr))
		go func() {
			pprofMux := http.NewServeMux()
			pprofMux.HandleFunc("/debug/pprof/", pprof.Index)
			pprofMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
			pprofMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
			pprofMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
			pprofMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
			if listenErr := http.ListenAndServe(pprofAddr, pprofMux); listenErr != nil {
				l.Error("pprof failed to listen",
					zap.String("addr", pprofAddr),
					zap.Error(listenErr),
				)
			}
		}()
	}

	u := api.NewUpdater(apiOptions(v))
	n := reload.NewNotifier(l.Named("reload"))
	if cfgPath := v.ConfigFileUsed(); cfgPath != "" {
		if watchErr := n.WatchFile(cfgPath); watchErr != nil {
			l.Warn("failed to watch config file", zap.Error(watchErr))
		}
	}
	go func() {
		for range n.C {
			l.Info("trying to update options")
			if readErr := v.ReadInConfig(); readErr != nil {
				if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
					l.Error("failed to read config", zap.Error(readErr))
					continue
				}
			}
			u.Set(apiOptions(v))
			l.Info("options updated")
		}
	}()

	h, err := api.NewHandler(l.Named("api"), n, u, registerer)
	if err != nil {
		return err
	}
	addr := v.GetString("api.addr")
	l.Info("api listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, h)
}

func getServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the calculator over HTTP with JSON responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(v)
		},
	}
	cmd.Flags().StringP("addr", "a", "127.0.0.1:8686", "listen address")
	cmd.Flags().String("pprof", "", "pprof address if specified")
	mustBind(v.BindPFlag("api.addr", cmd.Flags().Lookup("addr")))
	mustBind(v.BindPFlag("server.pprof", cmd.Flags().Lookup("pprof")))
	return cmd
}
