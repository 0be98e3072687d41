package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/iov-one/poe/cmd/poeapi/client"
	"github.com/iov-one/poe/cmd/poeapi/util"
	"github.com/iov-one/poe/x/poe"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// paginationMaxItems limits the number of claims returned for a single owner.
const paginationMaxItems = 100

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "poeapi_requests_total",
	Help: "Number of handled HTTP requests.",
}, []string{"route", "code"})

// NewApp returns an HTTP application that serves the claims registry stored
// by a poed node.
func NewApp(poeClient client.PoeClient) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(logger.New())
	app.Use(countRequests)

	app.Get("/info", Info)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	RegisterRoutes(app.Group("/claims"), poeClient)
	return app
}

// RegisterRoutes registers claim routes on given router.
func RegisterRoutes(r fiber.Router, poeClient client.PoeClient) {
	h := &ClaimsHandler{Poe: poeClient}
	r.Get("/", h.ClaimsByOwner)
	r.Get("/:content", h.ClaimDetail)
}

func countRequests(c *fiber.Ctx) error {
	err := c.Next()
	code := c.Response().StatusCode()
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
		} else {
			code = http.StatusInternalServerError
		}
	}
	requestsTotal.WithLabelValues(c.Route().Path, strconv.Itoa(code)).Inc()
	return err
}

// Info returns information about this instance of poeapi.
func Info(c *fiber.Ctx) error {
	return c.JSON(struct {
		BuildHash    string `json:"build_hash"`
		BuildVersion string `json:"build_version"`
	}{
		BuildHash:    util.BuildHash,
		BuildVersion: util.BuildVersion,
	})
}

// ClaimsHandler serves claims read from a poed node.
type ClaimsHandler struct {
	Poe client.PoeClient
}

// ClaimDetail returns the claim of the content given as a CID or hex encoded
// path parameter.
func (h *ClaimsHandler) ClaimDetail(c *fiber.Ctx) error {
	content, err := poe.ParseContent(c.Params("content"))
	if err != nil {
		return JSONErr(c, http.StatusBadRequest, "Content must be a CID or hex encoded value.")
	}

	var claim poe.Claim
	switch err := client.ABCIKeyQuery(c.Context(), h.Poe, "/claims", content, &claim); {
	case err == nil:
		return c.JSON(NewClaimView(&claim))
	case errors.ErrNotFound.Is(err):
		return JSONErr(c, http.StatusNotFound, "Content is not claimed.")
	default:
		log.Printf("claims ABCI query: %s", err)
		return JSONErr(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// ClaimsByOwner returns all claims owned by an address given as the owner
// query parameter.
func (h *ClaimsHandler) ClaimsByOwner(c *fiber.Ctx) error {
	rawOwner := c.Query("owner")
	if rawOwner == "" {
		return JSONErr(c, http.StatusBadRequest, "owner query parameter is required.")
	}
	owner, err := weave.ParseAddress(rawOwner)
	if err != nil {
		return JSONErr(c, http.StatusBadRequest, "owner must be a valid address value.")
	}

	it := client.ABCIQuery(c.Context(), h.Poe, "/claims/owner", owner)
	objects := make([]ClaimView, 0, paginationMaxItems)
fetchClaims:
	for {
		var claim poe.Claim
		switch _, err := it.Next(&claim); {
		case err == nil:
			objects = append(objects, NewClaimView(&claim))
			if len(objects) == paginationMaxItems {
				break fetchClaims
			}
		case errors.ErrIteratorDone.Is(err):
			break fetchClaims
		default:
			log.Printf("owner claims ABCI query: %s", err)
			return JSONErr(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
	}

	return c.JSON(struct {
		Objects []ClaimView `json:"objects"`
	}{
		Objects: objects,
	})
}

// ClaimView is the JSON representation of a claim.
type ClaimView struct {
	Content string        `json:"content"`
	Owner   weave.Address `json:"owner"`
	Height  int64         `json:"height"`
}

// NewClaimView returns the view of given claim. Content is represented as a
// CID whenever possible.
func NewClaimView(c *poe.Claim) ClaimView {
	return ClaimView{
		Content: poe.FormatContent(c.Content),
		Owner:   c.Owner,
		Height:  c.Height,
	}
}

// JSONErr writes a JSON encoded error response.
func JSONErr(c *fiber.Ctx, code int, errText string) error {
	return c.Status(code).JSON(struct {
		Errors []string `json:"errors"`
	}{
		Errors: []string{errText},
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	return JSONErr(c, code, err.Error())
}
