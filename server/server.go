// Package server serves the demo page and the browser binding.
package server

import (
	"bytes"
	"compress/gzip"
	"crypto/tls"
	"errors"
	"io/ioutil"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/frizinak/gotls/simplehttp"
)

var fileRE = regexp.MustCompile(`(?i)[^a-z0-9\-_.]+`)

type Config struct {
	Log *log.Logger

	// HTTP listen address
	HTTPAddress string

	// HTTPS certs, leave empty to disable TLS
	Cert    []byte
	CertKey []byte

	// In memory files keyed by path without leading slash. A "<path>.gz"
	// entry is served instead when the client accepts gzip.
	Static map[string][]byte

	// Directory with build artifacts (app.wasm, wasm_exec.js) that are not
	// embedded. Optional.
	AssetDir string

	// Serve straight from this directory instead [for debugging].
	HTTPDir string
}

type Server struct {
	c       Config
	tls     bool
	http    *http.Server
	s       *simplehttp.Server
	fh      http.Handler
	closing atomic.Bool
	served  uint64
}

func New(c Config) (*Server, error) {
	if c.Log == nil {
		return nil, errors.New("no logger configured")
	}
	if c.Static == nil {
		c.Static = make(map[string][]byte)
	}

	s := &Server{c: c}
	if c.HTTPDir != "" {
		s.fh = http.FileServer(http.Dir(c.HTTPDir))
	}

	var tlsConf *tls.Config
	if c.Cert != nil {
		s.tls = true
		tlsConf = &tls.Config{}
		tlsConf.Certificates = make([]tls.Certificate, 1)
		var err error
		tlsConf.Certificates[0], err = tls.X509KeyPair(c.Cert, c.CertKey)
		if err != nil {
			return nil, err
		}
	}

	nilLogger := log.New(ioutil.Discard, "", 0)
	s.http = &http.Server{Addr: c.HTTPAddress, TLSConfig: tlsConf, ErrorLog: nilLogger}
	s.s = simplehttp.FromHTTPServer(s.http, s.route, s.c.Log)

	return s, nil
}

// Compress adds a gzipped variant for every entry in static that does not
// have one yet.
func Compress(static map[string][]byte) error {
	buf := bytes.NewBuffer(nil)
	add := make(map[string][]byte)
	for k, v := range static {
		if strings.HasSuffix(k, ".gz") {
			continue
		}
		if _, ok := static[k+".gz"]; ok {
			continue
		}

		buf.Reset()
		w := gzip.NewWriter(buf)
		if _, err := w.Write(v); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		d := make([]byte, buf.Len())
		copy(d, buf.Bytes())
		add[k+".gz"] = d
	}

	for k, v := range add {
		static[k] = v
	}

	return nil
}

func (s *Server) route(r *http.Request, l *log.Logger) (simplehttp.HandleFunc, int) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return nil, http.StatusMethodNotAllowed
	}

	if s.fh != nil {
		return func(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
			s.fh.ServeHTTP(s.count(w), r)
			return 0, nil
		}, 0
	}

	p := strings.TrimLeft(r.URL.Path, "/")
	if p == "" {
		p = "index.html"
	}

	if _, ok := s.c.Static[p]; ok {
		return s.handleStatic(p), 0
	}

	if s.c.AssetDir == "" {
		return nil, 0
	}

	file := filepath.Join(s.c.AssetDir, fileRE.ReplaceAllString(p, "-"))
	if _, err := os.Stat(file); err != nil {
		return nil, 0
	}

	return func(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
		http.ServeFile(s.count(w), r, file)
		return 0, nil
	}, 0
}

func (s *Server) handleStatic(p string) simplehttp.HandleFunc {
	return func(w http.ResponseWriter, r *http.Request, l *log.Logger) (int, error) {
		ctype := mime.TypeByExtension(filepath.Ext(p))
		if ctype != "" {
			w.Header().Set("Content-Type", ctype)
		}
		if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			gz := p + ".gz"
			if _, ok := s.c.Static[gz]; ok {
				if g, ok := w.(*simplehttp.GZIPWriter); ok {
					w = g.ResponseWriter
				}
				w.Header().Set("Content-Encoding", "gzip")
				p = gz
			}
		}

		_, err := s.count(w).Write(s.c.Static[p])
		return 0, err
	}
}

func (s *Server) count(w http.ResponseWriter) http.ResponseWriter {
	return countingWriter{w, &s.served}
}

// Served returns the number of response body bytes written so far.
func (s *Server) Served() Bytes { return Size(atomic.LoadUint64(&s.served)) }

// ServeHTTP routes a single request, mostly useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, code := s.route(r, s.c.Log)
	if h == nil {
		if code == 0 {
			code = http.StatusNotFound
		}
		http.Error(w, http.StatusText(code), code)
		return
	}

	code, err := h(w, r, s.c.Log)
	if err != nil {
		s.c.Log.Println(err)
	}
	if code != 0 {
		http.Error(w, http.StatusText(code), code)
	}
}

// Run blocks until the server stops. Returns nil after Close.
func (s *Server) Run() error {
	err := s.s.Start(s.c.HTTPAddress, s.tls)
	if s.closing.Swap(true) {
		err = nil
	}
	return err
}

func (s *Server) Close() error {
	s.closing.Store(true)
	return s.http.Close()
}
