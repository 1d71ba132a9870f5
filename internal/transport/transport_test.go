package transport_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/model-router/internal/endpoint"
	"github.com/angeloszaimis/model-router/internal/transport"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func httpEndpoint(url string, timeout time.Duration) *endpoint.Endpoint {
	return endpoint.New("http-test", url, endpoint.ProtocolHTTP, 10, timeout)
}

func wsEndpoint(httpURL string, timeout time.Duration) *endpoint.Endpoint {
	wsURL := "ws" + strings.TrimPrefix(httpURL, "http")
	return endpoint.New("ws-test", wsURL, endpoint.ProtocolWebSocket, 10, timeout)
}

var _ = Describe("Client", func() {
	var client *transport.Client

	BeforeEach(func() {
		client = transport.NewClient(slog.Default())
	})

	AfterEach(func() {
		Expect(client.Close()).To(Succeed())
	})

	Describe("HTTP send", func() {
		It("POSTs the payload and decodes the JSON response", func() {
			var gotBody []byte
			var gotContentType string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotBody, _ = io.ReadAll(r.Body)
				gotContentType = r.Header.Get("Content-Type")
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"provider": "http", "status": "success"}`))
			}))
			defer server.Close()

			response, err := client.Send(context.Background(), httpEndpoint(server.URL, 5*time.Second), []byte("audio_data"), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(response).To(Equal(map[string]any{"provider": "http", "status": "success"}))
			Expect(string(gotBody)).To(Equal("audio_data"))
			Expect(gotContentType).To(Equal("application/octet-stream"))
		})

		It("forwards metadata as X-Metadata headers", func() {
			var gotHeader string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotHeader = r.Header.Get("X-Metadata-lang")
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			_, err := client.Send(context.Background(), httpEndpoint(server.URL, 5*time.Second), nil, map[string]string{"lang": "en"})
			Expect(err).NotTo(HaveOccurred())
			Expect(gotHeader).To(Equal("en"))
		})

		It("treats non-2xx statuses as failures", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			}))
			defer server.Close()

			_, err := client.Send(context.Background(), httpEndpoint(server.URL, 5*time.Second), []byte("x"), nil)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, transport.ErrStatus)).To(BeTrue())
		})

		It("fails on non-JSON responses", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			}))
			defer server.Close()

			_, err := client.Send(context.Background(), httpEndpoint(server.URL, 5*time.Second), []byte("x"), nil)
			Expect(err).To(HaveOccurred())
		})

		It("times out slow providers using the endpoint timeout", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(500 * time.Millisecond)
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			_, err := client.Send(context.Background(), httpEndpoint(server.URL, 50*time.Millisecond), []byte("x"), nil)
			Expect(err).To(HaveOccurred())
		})

		It("fails when the provider is unreachable", func() {
			_, err := client.Send(context.Background(), httpEndpoint("http://127.0.0.1:1", time.Second), []byte("x"), nil)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("WebSocket send", func() {
		It("sends one JSON frame and decodes the response", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				conn, err := upgrader.Upgrade(w, r, nil)
				if err != nil {
					return
				}
				defer conn.Close()

				var frame map[string]any
				if err := conn.ReadJSON(&frame); err != nil {
					return
				}
				conn.WriteJSON(map[string]any{
					"provider": "websocket",
					"echo":     frame["data"],
				})
			}))
			defer server.Close()

			response, err := client.Send(context.Background(), wsEndpoint(server.URL, 5*time.Second), []byte("audio_data"), map[string]string{"lang": "en"})
			Expect(err).NotTo(HaveOccurred())
			Expect(response["provider"]).To(Equal("websocket"))
			Expect(response["echo"]).To(Equal("audio_data"))
		})

		It("treats an abnormal close as a failure", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				conn, err := upgrader.Upgrade(w, r, nil)
				if err != nil {
					return
				}
				defer conn.Close()

				var frame map[string]any
				conn.ReadJSON(&frame)
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(4000, "simulated failure"),
					time.Now().Add(time.Second))
			}))
			defer server.Close()

			_, err := client.Send(context.Background(), wsEndpoint(server.URL, 5*time.Second), []byte("trigger failure"), nil)
			Expect(err).To(HaveOccurred())
		})

		It("fails when the handshake is refused", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "no websockets here", http.StatusBadRequest)
			}))
			defer server.Close()

			_, err := client.Send(context.Background(), wsEndpoint(server.URL, time.Second), []byte("x"), nil)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("probes", func() {
		It("reports reachable HTTP providers healthy", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			Expect(client.Probe(context.Background(), httpEndpoint(server.URL, time.Second))).To(Succeed())
		})

		It("reports unreachable HTTP providers unhealthy", func() {
			Expect(client.Probe(context.Background(), httpEndpoint("http://127.0.0.1:1", time.Second))).NotTo(Succeed())
		})

		It("probes WebSocket providers with a handshake", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				conn, err := upgrader.Upgrade(w, r, nil)
				if err != nil {
					return
				}
				defer conn.Close()
				// Block until the probe's close frame arrives.
				conn.ReadMessage()
			}))
			defer server.Close()

			Expect(client.Probe(context.Background(), wsEndpoint(server.URL, time.Second))).To(Succeed())
		})

		It("reports failed WebSocket handshakes unhealthy", func() {
			Expect(client.Probe(context.Background(), wsEndpoint("http://127.0.0.1:1", time.Second))).NotTo(Succeed())
		})
	})

	It("is safe to close more than once", func() {
		Expect(client.Close()).To(Succeed())
		Expect(client.Close()).To(Succeed())
	})
})
