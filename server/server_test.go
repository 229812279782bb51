package server

import (
	"bytes"
	"compress/gzip"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io/ioutil"
	"log"
	"math/big"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
)

func newServer(t *testing.T, c Config) *Server {
	t.Helper()
	c.Log = log.New(ioutil.Discard, "", 0)
	s, err := New(c)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func get(s *Server, path string, gz bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if gz {
		r.Header.Set("Accept-Encoding", "gzip")
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	return w
}

func TestStatic(t *testing.T) {
	static := map[string][]byte{"index.html": []byte("<html></html>")}
	if err := Compress(static); err != nil {
		t.Fatal(err)
	}
	if _, ok := static["index.html.gz"]; !ok {
		t.Fatal("no gzip variant")
	}

	s := newServer(t, Config{Static: static})

	w := get(s, "/", false)
	if w.Code != http.StatusOK || w.Body.String() != "<html></html>" {
		t.Errorf("got %d %q", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type %q", ct)
	}

	w = get(s, "/index.html", true)
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatal("gzip variant not served")
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	d, err := ioutil.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "<html></html>" {
		t.Errorf("got %q", d)
	}
}

func TestAssetDir(t *testing.T) {
	dir := t.TempDir()
	if err := ioutil.WriteFile(filepath.Join(dir, "app.wasm"), []byte("\x00asm"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := newServer(t, Config{AssetDir: dir})
	w := get(s, "/app.wasm", false)
	if w.Code != http.StatusOK || !bytes.Equal(w.Body.Bytes(), []byte("\x00asm")) {
		t.Errorf("got %d %q", w.Code, w.Body.String())
	}
	if n := s.Served().String(); n != "4B" {
		t.Errorf("served %s", n)
	}

	if w = get(s, "/../app.wasm", false); w.Code != http.StatusNotFound {
		t.Errorf("path outside the asset dir was served: %d", w.Code)
	}

	if w = get(s, "/nope.js", false); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestMethod(t *testing.T) {
	s := newServer(t, Config{Static: map[string][]byte{"index.html": nil}})
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, r)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("got %d", w.Code)
	}
}

func TestHTTPDir(t *testing.T) {
	dir := t.TempDir()
	if err := ioutil.WriteFile(filepath.Join(dir, "page.txt"), []byte("from disk"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := newServer(t, Config{
		Static:  map[string][]byte{"page.txt": []byte("embedded")},
		HTTPDir: dir,
	})
	w := get(s, "/page.txt", false)
	if w.Code != http.StatusOK || w.Body.String() != "from disk" {
		t.Errorf("got %d %q", w.Code, w.Body.String())
	}
	if n := s.Served().String(); n != "9B" {
		t.Errorf("served %s", n)
	}
}

func selfSigned(t *testing.T) (cert, key []byte) {
	t.Helper()
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatal(err)
	}
	kder, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		t.Fatal(err)
	}

	cert = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	key = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: kder})
	return
}

func TestTLS(t *testing.T) {
	cert, key := selfSigned(t)
	s := newServer(t, Config{Cert: cert, CertKey: key})
	if !s.tls || s.http.TLSConfig == nil || len(s.http.TLSConfig.Certificates) != 1 {
		t.Error("tls not configured")
	}

	_, err := New(Config{
		Log:     log.New(ioutil.Discard, "", 0),
		Cert:    cert,
		CertKey: []byte("nope"),
	})
	if err == nil {
		t.Error("invalid key accepted")
	}
}

func TestRunClose(t *testing.T) {
	s := newServer(t, Config{HTTPAddress: "127.0.0.1:0"})
	errc := make(chan error, 1)
	go func() { errc <- s.Run() }()

	time.Sleep(50 * time.Millisecond)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("run after close: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
