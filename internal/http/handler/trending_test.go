package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cursorcontext/architect/internal/http/handler"
	"github.com/cursorcontext/architect/internal/trending"
)

var _ = Describe("TrendingHandler", func() {
	var (
		router *gin.Engine
		reader *mockTrendingReader
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		reader = &mockTrendingReader{}
		router = gin.New()
		router.GET("/api/trending", handler.NewTrendingHandler(reader).List)
	})

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/trending", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("returns the ranked repositories", func() {
		reader.topFn = func(context.Context) []trending.Entry {
			return []trending.Entry{
				{Repo: "octo/cat", Count: 12},
				{Repo: "shadcn-ui/ui", Count: 7},
			}
		}

		w := get()

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp struct {
			Trending []trending.Entry `json:"trending"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Trending).To(HaveLen(2))
		Expect(resp.Trending[0].Repo).To(Equal("octo/cat"))
		Expect(resp.Trending[0].Count).To(Equal(int64(12)))
	})

	It("returns an empty list when the store is unavailable", func() {
		w := get()

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"trending": []}`))
	})
})
