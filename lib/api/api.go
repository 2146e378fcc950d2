package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime/pprof"
	"slices"
	"sync"
	"time"

	"github.com/fosdem/trigon/lib/config"
	"github.com/fosdem/trigon/lib/metrics"
	"github.com/fosdem/trigon/lib/stats"
	"github.com/fosdem/trigon/lib/theatre"
	"github.com/gorilla/websocket"
)

type Api struct {
	srv     http.Server
	mux     *http.ServeMux
	cfg     *config.ApiCfg
	theatre *theatre.Theatre
	objects []ObjectInfo

	Stats *stats.Stats

	wsMutex   sync.Mutex
	wsClients map[*websocket.Conn]bool
}

func New(cfg *config.ApiCfg, t *theatre.Theatre, s *stats.Stats) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.theatre = t
	a.objects = describeObjects(t)
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.wsClients = make(map[*websocket.Conn]bool)
	a.Stats = s

	t.AddEventListener("shutdown", func(t *theatre.Theatre, data interface{}) {
		event := data.(theatre.EventShutdown)
		packet, err := json.Marshal(event)
		if err != nil {
			return
		}
		a.broadcast(packet)
	})

	a.routes()
	return a
}

func (a *Api) routes() {
	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("POST /api/kill", a.suicide)
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/config", a.handleConfig)
	a.mux.HandleFunc("GET /api/objects", a.handleObjects)
	a.mux.HandleFunc("GET /api/ws", a.handleWebsocket)
	a.mux.Handle("GET /metrics", metrics.Handler())
}

// Handler serves the api without listening on the configured address
func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// @Summary	Stop rendering after the current frame and exit
// @Router		/api/kill [post]
// @Tags		base
// @Success	200
func (a *Api) suicide(w http.ResponseWriter, _ *http.Request) {
	log.Printf("shutting down as per api request")
	a.theatre.RequestShutdown("api request")
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		log.Printf("could not write response: %s\n", err.Error())
		return
	}
}

// @Summary	Get render statistics
// @Router		/api/stats [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	stats.Snapshot
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.Stats.Snapshot())
	if err != nil {
		http.Error(w, fmt.Sprintf("could encode stats: %s", err), http.StatusInternalServerError)
		return
	}
}

type Config struct {
	Objects  []string `json:"objects"`
	Programs []string `json:"programs"`
}

// @Summary	Get the names of the objects and programs
// @Router		/api/config [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	Config
func (a *Api) handleConfig(w http.ResponseWriter, _ *http.Request) {
	result := &Config{}
	for _, obj := range a.objects {
		result.Objects = append(result.Objects, obj.Name)
	}
	for _, obj := range a.objects {
		if !slices.Contains(result.Programs, obj.Program) {
			result.Programs = append(result.Programs, obj.Program)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(result)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't encode config: %s", err), http.StatusInternalServerError)
		return
	}
}

func ServeInBackground(t *theatre.Theatre, s *stats.Stats, cfg *config.ApiCfg) *Api {
	var theApi *Api
	if cfg != nil {
		theApi = New(cfg, t, s)

		log.Printf("starting web server on %s\n", cfg.Bind)
		go func() {
			err := theApi.Serve()
			if err != nil {
				log.Fatalf("could not start web server: %s", err)
			}
		}()
	}
	return theApi
}
