package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/alemeno/ai/summary"
)

type MLService struct {
	Summarizer *summary.Summarizer
}

type summarizeRequest struct {
	Text   string `json:"text"`
	APIKey string `json:"api_key"`
	// UseAPI set to false disables the remote call for this request.
	UseAPI *bool `json:"use_api"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

func (r *summarizeRequest) credential() summary.CredentialOverride {
	if r.UseAPI != nil && !*r.UseAPI {
		return summary.NoRemote()
	}
	return summary.WithAPIKey(r.APIKey)
}

func (s *MLService) Summarize(c echo.Context) error {
	request := &summarizeRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	if request.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text required")
	}

	resp := s.Summarizer.Summarize(c.Request().Context(), request.Text, request.credential())
	return c.JSON(http.StatusOK, summarizeResponse{Summary: resp.Summary})
}
