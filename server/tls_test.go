// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package server

import (
	"context"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticTLS(t *testing.T) {
	t.Run("will return a clone of the config", func(t *testing.T) {
		cfg := &tls.Config{ServerName: "example.com"}
		tlsc := StaticTLS(cfg)

		got, err := tlsc.ConfigureTLS(context.Background())
		require.Nil(t, err)
		assert.Equal(t, "example.com", got.ServerName)

		got.NextProtos = append(got.NextProtos, "h2")
		assert.Empty(t, cfg.NextProtos)
	})
}

func TestKeyPairFiles(t *testing.T) {
	t.Run("will return a LoadKeyPairError", func(t *testing.T) {
		t.Run("if the files do not exist", func(t *testing.T) {
			dir := t.TempDir()
			tlsc := KeyPairFiles(filepath.Join(dir, "tls.crt"), filepath.Join(dir, "tls.key"))

			_, err := tlsc.ConfigureTLS(context.Background())

			var lerr LoadKeyPairError
			if !assert.ErrorAs(t, err, &lerr) {
				return
			}
			assert.Equal(t, filepath.Join(dir, "tls.key"), lerr.KeyFile)
		})
	})

	t.Run("will load the key pair", func(t *testing.T) {
		t.Run("if the files contain a pem encoded certificate and key", func(t *testing.T) {
			cert := selfSignedCert(t)

			dir := t.TempDir()
			certFile := filepath.Join(dir, "tls.crt")
			keyFile := filepath.Join(dir, "tls.key")

			certPem := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Certificate[0]})
			require.Nil(t, os.WriteFile(certFile, certPem, 0o600))

			keyPem := pem.EncodeToMemory(&pem.Block{
				Type:  "RSA PRIVATE KEY",
				Bytes: x509.MarshalPKCS1PrivateKey(cert.PrivateKey.(*rsa.PrivateKey)),
			})
			require.Nil(t, os.WriteFile(keyFile, keyPem, 0o600))

			cfg, err := KeyPairFiles(certFile, keyFile).ConfigureTLS(context.Background())
			require.Nil(t, err)
			assert.Len(t, cfg.Certificates, 1)
		})
	})
}
