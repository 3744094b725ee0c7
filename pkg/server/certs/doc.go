// Package certs serves the check server's TLS certificate.
//
// A Reloader holds the key pair named in config.TLSConfig and re-reads it
// when either file's modification time advances, so renewed certificates
// are picked up without a restart:
//
//	r, err := certs.NewReloader(&cfg.Server.TLS, logger)
//	if err != nil {
//		return err
//	}
//	go r.Run(ctx)
//	ln = tls.NewListener(ln, certs.ServerConfig(&cfg.Server.TLS, r))
//
// Certificates that are expired or not yet valid are rejected. A reload
// that fails keeps the previous certificate.
package certs
