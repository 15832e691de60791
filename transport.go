package spacex

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	utls "github.com/refraction-networking/utls"
)

// TransportOptions configures NewHTTPClient.
type TransportOptions struct {
	Timeout            time.Duration // Overall client timeout, 0 leaves it to the transport.
	ChromeFingerprint  bool          // Dial TLS with a Chrome ClientHello.
	InsecureSkipVerify bool          // Skip certificate verification, for tests against self signed servers.
}

// NewHTTPClient builds the client used by HTTPSession. Every response body is decompressed
// before it reaches the session.
func NewHTTPClient(opts TransportOptions) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConnsPerHost: 4,
	}
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if opts.ChromeFingerprint {
		transport.DialTLSContext = chromeDialer(transport)
	}
	return &http.Client{
		Transport: &decompressingRoundTripper{base: transport},
		Timeout:   opts.Timeout,
	}
}

// chromeDialer dials TLS with utls mimicking Chrome. The ALPN extension is pinned to http/1.1
// since the connection is not a *tls.Conn and net/http cannot speak h2 over it.
func chromeDialer(transport *http.Transport) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		tcpConn, err := (&net.Dialer{}).DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		sniHost, _, err := net.SplitHostPort(addr)
		if err != nil {
			sniHost = addr
		}

		uTlsConfig := &utls.Config{
			ServerName: sniHost,
		}
		if transport.TLSClientConfig != nil {
			uTlsConfig.InsecureSkipVerify = transport.TLSClientConfig.InsecureSkipVerify
		}

		uConn := utls.UClient(tcpConn, uTlsConfig, utls.HelloChrome_Auto)
		if err := uConn.BuildHandshakeState(); err != nil {
			tcpConn.Close()
			return nil, fmt.Errorf("building handshake state : %w", err)
		}

		// HelloChrome_Auto ignores NextProtos, the extension has to be rewritten before the handshake
		foundALPN := false
		for _, ext := range uConn.Extensions {
			if alpnExt, ok := ext.(*utls.ALPNExtension); ok {
				alpnExt.AlpnProtocols = []string{"http/1.1"}
				foundALPN = true
				break
			}
		}
		if !foundALPN {
			tcpConn.Close()
			return nil, errors.New("could not find ALPNExtension")
		}

		if err := uConn.HandshakeContext(ctx); err != nil {
			tcpConn.Close()
			return nil, err
		}
		return uConn, nil
	}
}

// decompressingRoundTripper advertises gzip and brotli and replaces compressed bodies with their decoded form.
type decompressingRoundTripper struct {
	base http.RoundTripper
}

func (d *decompressingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", "br, gzip")
	}
	res, err := d.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if err := decompressBody(res); err != nil {
		return nil, err
	}
	return res, nil
}

// decompressBody replaces a gzip or br encoded body with the decompressed data, drops the
// Content-Encoding header and updates Content-Length. Other encodings are left untouched.
func decompressBody(res *http.Response) error {
	if res.Body == nil || res.Body == http.NoBody {
		return nil
	}
	var reader io.Reader
	switch res.Header.Get("Content-Encoding") {
	case "gzip":
		gzipReader, err := gzip.NewReader(res.Body)
		if err != nil {
			res.Body.Close()
			return fmt.Errorf("%w: creating gzip reader : %w", ErrDecode, err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	case "br":
		reader = brotli.NewReader(res.Body)
	default:
		return nil
	}
	defer res.Body.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w: reading %s content : %w", ErrDecode, res.Header.Get("Content-Encoding"), err)
	}
	res.Body = io.NopCloser(bytes.NewReader(decompressed))
	res.ContentLength = int64(len(decompressed))
	res.Header.Set("Content-Length", fmt.Sprintf("%d", len(decompressed)))
	res.Header.Del("Content-Encoding")
	res.Uncompressed = true
	return nil
}
