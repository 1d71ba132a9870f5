package endpoint_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/model-router/internal/endpoint"
)

var _ = Describe("Protocol", func() {
	DescribeTable("ParseProtocol",
		func(input string, expected endpoint.Protocol, ok bool) {
			p, err := endpoint.ParseProtocol(input)
			if ok {
				Expect(err).NotTo(HaveOccurred())
				Expect(p).To(Equal(expected))
			} else {
				Expect(err).To(HaveOccurred())
			}
		},
		Entry("http", "http", endpoint.ProtocolHTTP, true),
		Entry("websocket", "websocket", endpoint.ProtocolWebSocket, true),
		Entry("grpc is unsupported", "grpc", endpoint.Protocol(0), false),
		Entry("empty is unsupported", "", endpoint.Protocol(0), false),
	)

	It("renders protocol names", func() {
		Expect(endpoint.ProtocolHTTP.String()).To(Equal("http"))
		Expect(endpoint.ProtocolWebSocket.String()).To(Equal("websocket"))
	})
})

var _ = Describe("Registry", func() {
	newEndpoint := func(name string) *endpoint.Endpoint {
		return endpoint.New(name, "http://localhost:8080/v1/stt", endpoint.ProtocolHTTP, 10, 5*time.Second)
	}

	It("exposes endpoints in configuration order", func() {
		registry, err := endpoint.NewRegistry([]*endpoint.Endpoint{
			newEndpoint("primary"),
			newEndpoint("backup"),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(registry.Names()).To(Equal([]string{"primary", "backup"}))
		Expect(registry.All()).To(HaveLen(2))
	})

	It("looks up endpoints by name", func() {
		registry, err := endpoint.NewRegistry([]*endpoint.Endpoint{newEndpoint("primary")})
		Expect(err).NotTo(HaveOccurred())

		ep, ok := registry.Lookup("primary")
		Expect(ok).To(BeTrue())
		Expect(ep.Name()).To(Equal("primary"))
		Expect(ep.URL()).To(Equal("http://localhost:8080/v1/stt"))
		Expect(ep.Weight()).To(Equal(10))
		Expect(ep.Timeout()).To(Equal(5 * time.Second))

		_, ok = registry.Lookup("unknown")
		Expect(ok).To(BeFalse())
	})

	It("rejects duplicate names", func() {
		_, err := endpoint.NewRegistry([]*endpoint.Endpoint{
			newEndpoint("primary"),
			newEndpoint("primary"),
		})
		Expect(err).To(MatchError(ContainSubstring("duplicate endpoint name")))
	})

	It("rejects an empty endpoint list", func() {
		_, err := endpoint.NewRegistry(nil)
		Expect(err).To(HaveOccurred())
	})
})
