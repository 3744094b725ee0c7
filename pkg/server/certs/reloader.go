package certs

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"esfpc/fpcheck/pkg/config"
)

// ExpiryWarning is how close to expiry a certificate is logged at WARN.
const ExpiryWarning = 30 * 24 * time.Hour

// Reloader holds a certificate and reloads it when its files change.
type Reloader struct {
	certFile string
	keyFile  string
	interval time.Duration
	logger   *slog.Logger

	mu      sync.RWMutex
	cert    *tls.Certificate
	certMod time.Time
	keyMod  time.Time
}

// NewReloader loads the key pair named by cfg.
func NewReloader(cfg *config.TLSConfig, logger *slog.Logger) (*Reloader, error) {
	if cfg == nil {
		return nil, errors.New("tls config cannot be nil")
	}
	if cfg.CertFile == "" || cfg.KeyFile == "" {
		return nil, errors.New("cert_file and key_file are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Reloader{
		certFile: cfg.CertFile,
		keyFile:  cfg.KeyFile,
		interval: cfg.ReloadInterval,
		logger:   logger.With("component", "certs"),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Run checks the files every reload interval until ctx is done. It returns
// at once when reloading is disabled.
func (r *Reloader) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Reload(); err != nil {
				r.logger.Error("failed to reload certificate", "cert_file", r.certFile, "error", err)
			}
		}
	}
}

// Reload re-reads the key pair if either file changed since the last load
// and reports whether it did.
func (r *Reloader) Reload() (bool, error) {
	certMod, keyMod, err := r.modTimes()
	if err != nil {
		return false, err
	}

	r.mu.RLock()
	changed := certMod.After(r.certMod) || keyMod.After(r.keyMod)
	r.mu.RUnlock()
	if !changed {
		return false, nil
	}

	if err := r.load(); err != nil {
		return false, err
	}
	return true, nil
}

// Certificate returns the current certificate.
func (r *Reloader) Certificate() *tls.Certificate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cert
}

// GetCertificate implements tls.Config.GetCertificate.
func (r *Reloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return r.Certificate(), nil
}

func (r *Reloader) modTimes() (time.Time, time.Time, error) {
	certInfo, err := os.Stat(r.certFile)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	keyInfo, err := os.Stat(r.keyFile)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return certInfo.ModTime(), keyInfo.ModTime(), nil
}

func (r *Reloader) load() error {
	certMod, keyMod, err := r.modTimes()
	if err != nil {
		return err
	}

	cert, err := tls.LoadX509KeyPair(r.certFile, r.keyFile)
	if err != nil {
		return fmt.Errorf("failed to load certificate: %w", err)
	}
	leaf, err := Validate(&cert)
	if err != nil {
		return err
	}
	cert.Leaf = leaf

	r.mu.Lock()
	r.cert = &cert
	r.certMod = certMod
	r.keyMod = keyMod
	r.mu.Unlock()

	attrs := []any{
		"subject", leaf.Subject.CommonName,
		"expires", humanize.Time(leaf.NotAfter),
		"not_after", leaf.NotAfter.Format(time.RFC3339),
	}
	if time.Until(leaf.NotAfter) < ExpiryWarning {
		r.logger.Warn("certificate expiring soon", attrs...)
	} else {
		r.logger.Info("certificate loaded", attrs...)
	}
	return nil
}

// Validate parses the leaf of cert and checks its validity period.
func Validate(cert *tls.Certificate) (*x509.Certificate, error) {
	if cert == nil || len(cert.Certificate) == 0 {
		return nil, errors.New("certificate chain is empty")
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}

	now := time.Now()
	if now.Before(leaf.NotBefore) {
		return nil, fmt.Errorf("certificate is not valid before %s", leaf.NotBefore.Format(time.RFC3339))
	}
	if now.After(leaf.NotAfter) {
		return nil, fmt.Errorf("certificate expired on %s", leaf.NotAfter.Format(time.RFC3339))
	}
	return leaf, nil
}

// ServerConfig returns a tls.Config serving r's certificate.
func ServerConfig(cfg *config.TLSConfig, r *Reloader) *tls.Config {
	minVersion := uint16(tls.VersionTLS13)
	if cfg != nil && cfg.MinVersion == "1.2" {
		minVersion = tls.VersionTLS12
	}
	return &tls.Config{
		MinVersion:     minVersion,
		GetCertificate: r.GetCertificate,
	}
}
