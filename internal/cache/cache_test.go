package cache_test

import (
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/model-router/internal/cache"
)

var _ = Describe("Fingerprint", func() {
	It("is deterministic for identical requests", func() {
		a := cache.Fingerprint("stt", []byte("audio"), map[string]string{"lang": "en"})
		b := cache.Fingerprint("stt", []byte("audio"), map[string]string{"lang": "en"})
		Expect(a).To(Equal(b))
	})

	It("is independent of metadata declaration order", func() {
		a := cache.Fingerprint("stt", []byte("audio"), map[string]string{"lang": "en", "rate": "16k"})
		b := cache.Fingerprint("stt", []byte("audio"), map[string]string{"rate": "16k", "lang": "en"})
		Expect(a).To(Equal(b))
	})

	DescribeTable("distinguishes request components",
		func(modelType string, data string, metadata map[string]string) {
			base := cache.Fingerprint("stt", []byte("audio"), map[string]string{"lang": "en"})
			other := cache.Fingerprint(modelType, []byte(data), metadata)
			Expect(other).NotTo(Equal(base))
		},
		Entry("different model type", "tts", "audio", map[string]string{"lang": "en"}),
		Entry("different payload", "stt", "audio2", map[string]string{"lang": "en"}),
		Entry("different metadata value", "stt", "audio", map[string]string{"lang": "de"}),
		Entry("missing metadata", "stt", "audio", nil),
	)

	It("treats nil and empty metadata alike", func() {
		a := cache.Fingerprint("stt", []byte("audio"), nil)
		b := cache.Fingerprint("stt", []byte("audio"), map[string]string{})
		Expect(a).To(Equal(b))
	})
})

var _ = Describe("Cache", func() {
	var c *cache.Cache

	BeforeEach(func() {
		c = cache.New()
	})

	It("misses before the first write", func() {
		_, ok := c.Get("key")
		Expect(ok).To(BeFalse())
	})

	It("returns stored responses verbatim", func() {
		response := map[string]any{"provider": "http", "status": "success"}
		c.Put("key", response)

		got, ok := c.Get("key")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(response))
	})

	It("keeps entries for the process lifetime", func() {
		c.Put("key", map[string]any{"result": "ok"})
		for i := 0; i < 10; i++ {
			_, ok := c.Get("key")
			Expect(ok).To(BeTrue())
		}
		Expect(c.Len()).To(Equal(1))
	})

	It("is last-writer-wins for the same key", func() {
		c.Put("key", map[string]any{"n": 1})
		c.Put("key", map[string]any{"n": 2})

		got, ok := c.Get("key")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(map[string]any{"n": 2}))
	})

	It("does not corrupt entries under concurrent writers and readers", func() {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				c.Put(fmt.Sprintf("key-%d", i%5), map[string]any{"n": i})
			}(i)
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				if got, ok := c.Get(fmt.Sprintf("key-%d", i%5)); ok {
					Expect(got).To(HaveKey("n"))
				}
			}(i)
		}
		wg.Wait()

		Expect(c.Len()).To(Equal(5))
	})
})
