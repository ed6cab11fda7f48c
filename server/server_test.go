package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jrh3k5/qrsvg/bridge"
	"github.com/jrh3k5/qrsvg/config"
	"github.com/jrh3k5/qrsvg/generator"
	"github.com/jrh3k5/qrsvg/qr"
	"github.com/jrh3k5/qrsvg/server"
)

// countingGenerator records how often generation actually ran.
type countingGenerator struct {
	delegate bridge.SVGGenerator
	calls    int
}

func (g *countingGenerator) EncodeToSVG(data string) (string, error) {
	g.calls++
	return g.delegate.EncodeToSVG(data)
}

type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func postJSON(app *fiber.App, path string, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	Expect(err).ToNot(HaveOccurred(), "the request should complete")
	return resp
}

func readBody(resp *http.Response) string {
	body, err := io.ReadAll(resp.Body)
	Expect(err).ToNot(HaveOccurred())
	return string(body)
}

var _ = Describe("Server", func() {
	var cfg config.ServerConfig
	var gen *countingGenerator
	var store fiber.Storage
	var app *fiber.App

	setup := func() {
		svc := server.NewService(bridge.New(gen), cfg, store, "test")
		app = server.SetupApp(svc)
	}

	BeforeEach(func() {
		cfg = config.Default().Server
		gen = &countingGenerator{delegate: generator.New(qr.NewCodingEncoder())}
		store = nil
		setup()
	})

	It("reports health", func() {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/health", nil))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
		Expect(resp.Header.Get(fiber.HeaderXRequestID)).ToNot(BeEmpty(), "every response should carry a request id")
	})

	It("answers unknown routes with a JSON 404", func() {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/v1/nope", nil))
		Expect(err).ToNot(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusNotFound))

		var body errorBody
		Expect(json.Unmarshal([]byte(readBody(resp)), &body)).To(Succeed())
		Expect(body.Error.Code).To(Equal(fiber.StatusNotFound))
	})

	Context("/v1/generate", func() {
		It("responds with SVG", func() {
			resp := postJSON(app, "/v1/generate", `{"data":"HELLO"}`)
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
			Expect(resp.Header.Get(fiber.HeaderContentType)).To(HavePrefix("image/svg+xml"))
			Expect(readBody(resp)).To(ContainSubstring("<svg "))
		})

		It("maps encoding errors to 422", func() {
			resp := postJSON(app, "/v1/generate", `{"data":"`+strings.Repeat("z", 2400)+`"}`)
			Expect(resp.StatusCode).To(Equal(fiber.StatusUnprocessableEntity))

			var body errorBody
			Expect(json.Unmarshal([]byte(readBody(resp)), &body)).To(Succeed())
			Expect(body.Error.Message).To(ContainSubstring("capacity"))
		})

		It("rejects malformed bodies", func() {
			resp := postJSON(app, "/v1/generate", `{"data":`)
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})

		It("serves repeated payloads from the cache", func() {
			store = mustStorage(config.CacheConfig{Enabled: true, Backend: config.CacheBackendMemory, TTL: time.Minute})
			setup()

			first := readBody(postJSON(app, "/v1/generate", `{"data":"254-12"}`))
			second := readBody(postJSON(app, "/v1/generate", `{"data":"254-12"}`))
			Expect(second).To(Equal(first))
			Expect(gen.calls).To(Equal(1), "the second request should be a cache hit")

			readBody(postJSON(app, "/v1/generate", `{"data":"254-13"}`))
			Expect(gen.calls).To(Equal(2), "a different payload should miss")
		})
	})

	Context("/v1/export", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("is forbidden unless enabled", func() {
			resp := postJSON(app, "/v1/export", `{"svg":"<svg/>","path":"`+filepath.Join(dir, "out.svg")+`"}`)
			Expect(resp.StatusCode).To(Equal(fiber.StatusForbidden))
			_, err := os.Stat(filepath.Join(dir, "out.svg"))
			Expect(err).To(HaveOccurred(), "nothing should be written")
		})

		When("enabled", func() {
			BeforeEach(func() {
				cfg.ExportEnabled = true
				setup()
			})

			It("writes the file", func() {
				path := filepath.Join(dir, "out.svg")
				resp := postJSON(app, "/v1/export", `{"svg":"<svg/>","path":"`+path+`"}`)
				Expect(resp.StatusCode).To(Equal(fiber.StatusNoContent))

				written, err := os.ReadFile(path)
				Expect(err).ToNot(HaveOccurred())
				Expect(string(written)).To(Equal("<svg/>"))
			})

			It("maps IO errors to 500 with the OS message", func() {
				path := filepath.Join(dir, "missing", "out.svg")
				resp := postJSON(app, "/v1/export", `{"svg":"<svg/>","path":"`+path+`"}`)
				Expect(resp.StatusCode).To(Equal(fiber.StatusInternalServerError))

				var body errorBody
				Expect(json.Unmarshal([]byte(readBody(resp)), &body)).To(Succeed())
				Expect(body.Error.Message).To(ContainSubstring(path))
			})

			It("requires a path", func() {
				resp := postJSON(app, "/v1/export", `{"svg":"<svg/>"}`)
				Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
			})
		})
	})

	Context("/v1/invoke", func() {
		invoke := func(body string) bridge.Response {
			resp := postJSON(app, "/v1/invoke", body)
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var out bridge.Response
			Expect(json.Unmarshal([]byte(readBody(resp)), &out)).To(Succeed())
			return out
		}

		It("runs generate", func() {
			out := invoke(`{"command":"generate","args":{"data":"HELLO"}}`)
			Expect(out.Error).To(BeEmpty())
			Expect(out.Result).To(ContainSubstring("<svg "))
		})

		It("flattens errors into the response", func() {
			out := invoke(`{"command":"generate","args":{"data":""}}`)
			Expect(out.Error).To(Equal("payload is empty"))
		})

		It("keeps export behind the switch", func() {
			out := invoke(`{"command":"export","args":{"svg":"<svg/>","path":"/tmp/never.svg"}}`)
			Expect(out.Error).To(Equal("export is disabled"))
		})

		It("reports unknown commands", func() {
			out := invoke(`{"command":"print"}`)
			Expect(out.Error).To(ContainSubstring("unknown command"))
		})
	})
})
