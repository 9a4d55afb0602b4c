package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/mosaicnetworks/glomers/src/message"
	"github.com/mosaicnetworks/glomers/src/node"
	"github.com/mosaicnetworks/glomers/src/telemetry"
	"github.com/sirupsen/logrus"
)

// Service exposes a read-only HTTP API over a running Node.
type Service struct {
	sync.Mutex

	bindAddress string
	node        *node.Node
	mux         *http.ServeMux
	logger      *logrus.Entry
}

// NewService ...
func NewService(bindAddress string, n *node.Node, logger *logrus.Entry) *Service {
	service := Service{
		bindAddress: bindAddress,
		node:        n,
		mux:         http.NewServeMux(),
		logger:      logger,
	}

	service.registerHandlers()

	return &service
}

// registerHandlers registers the API handlers with the Service's own mux. The
// node's stdout is its reply stream, so nothing here may write to it.
func (s *Service) registerHandlers() {
	s.logger.Debug("Registering API handlers")
	s.mux.HandleFunc("/stats", s.makeHandler(s.GetStats))
	s.mux.HandleFunc("/peers", s.makeHandler(s.GetPeers))
	s.mux.HandleFunc("/messages/", s.makeHandler(s.GetMessages))
	s.mux.Handle("/metrics", telemetry.MetricsHandler())
}

func (s *Service) makeHandler(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Lock()
		defer s.Unlock()

		// enable CORS
		w.Header().Set("Access-Control-Allow-Origin", "*")

		fn(w, r)
	}
}

// Handler returns the http.Handler serving the API.
func (s *Service) Handler() http.Handler {
	return s.mux
}

// Serve calls ListenAndServe. This is a blocking call.
func (s *Service) Serve() {
	s.logger.WithField("bind_address", s.bindAddress).Debug("Serving API")

	err := http.ListenAndServe(s.bindAddress, s.mux)
	if err != nil {
		s.logger.Error(err)
	}
}

// GetStats ...
func (s *Service) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := s.node.GetStats()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(stats)
}

// GetPeers ...
func (s *Service) GetPeers(w http.ResponseWriter, r *http.Request) {
	peers := s.node.GetPeers()

	res := make([]string, 0, len(peers))
	for _, p := range peers {
		res = append(res, p.String())
	}

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(res)
}

// GetMessages returns the journaled replies following the msg_id in the path,
// in their wire form.
func (s *Service) GetMessages(w http.ResponseWriter, r *http.Request) {
	param := r.URL.Path[len("/messages/"):]

	skip := uint64(0)
	if param != "" {
		var err error
		skip, err = strconv.ParseUint(param, 10, 64)
		if err != nil {
			s.logger.WithError(err).Errorf("Parsing skip parameter %s", param)

			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}
	}

	envelopes, err := s.node.GetMessages(skip)
	if err != nil {
		s.logger.WithError(err).Errorf("Retrieving messages after %d", skip)

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	lines := make([]json.RawMessage, 0, len(envelopes))
	for _, env := range envelopes {
		line, err := message.Encode(env)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		lines = append(lines, json.RawMessage(bytes.TrimSpace(line)))
	}

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(lines)
}
