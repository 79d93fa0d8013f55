package controllers

import (
	"io"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/app/services"
	"github.com/pehnava/pehnava/pkg/bind"
	"github.com/pehnava/pehnava/pkg/middleware"
	"github.com/pehnava/pehnava/pkg/response"
)

type AnalyticsController struct {
	analytics *services.AnalyticsService
	tryon     *services.TryOnService
	activity  *services.ActivityService
}

func NewAnalyticsController(analytics *services.AnalyticsService, tryon *services.TryOnService, activity *services.ActivityService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics, tryon: tryon, activity: activity}
}

// Summary serves the seller's dashboard counters, recomputed per
// request.
func (c *AnalyticsController) Summary(w http.ResponseWriter, r *http.Request) {
	seller, ok := currentUserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	summary, err := c.analytics.SellerSummary(r.Context(), seller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.Success(w, summary)
}

// LogTryOn records a try-on event. Works for anonymous shoppers; a
// valid bearer token attaches their identity.
func (c *AnalyticsController) LogTryOn(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ProductID string `json:"productId"`
	}
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	productID, err := primitive.ObjectIDFromHex(in.ProductID)
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	var user *primitive.ObjectID
	if hex, ok := middleware.UserIDFromCtx(r); ok {
		if id, err := primitive.ObjectIDFromHex(hex); err == nil {
			user = &id
		}
	}

	event, err := c.analytics.LogTryOn(r.Context(), user, productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	c.activity.Log(r.Context(), event.Admin, "Product tried on", "camera", "purple") //nolint:errcheck
	response.Created(w, event)
}

// Synthesize renders a try-on image: multipart upload with a "person"
// photo and a "productId" field. The event is logged on success.
func (c *AnalyticsController) Synthesize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	productID, err := primitive.ObjectIDFromHex(r.FormValue("productId"))
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	file, _, err := r.FormFile("person")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "person image is required")
		return
	}
	defer file.Close()

	person, err := io.ReadAll(io.LimitReader(file, 16<<20))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "could not read person image")
		return
	}

	url, err := c.tryon.Synthesize(r.Context(), person, productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var user *primitive.ObjectID
	if hex, ok := middleware.UserIDFromCtx(r); ok {
		if id, err := primitive.ObjectIDFromHex(hex); err == nil {
			user = &id
		}
	}
	if event, err := c.analytics.LogTryOn(r.Context(), user, productID); err == nil {
		c.activity.Log(r.Context(), event.Admin, "Product tried on", "camera", "purple") //nolint:errcheck
	}

	response.Success(w, map[string]string{"resultUrl": url})
}
