package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	readingdomain "github.com/gridstream/gridstream/internal/reading/domain"
)

type createReadingRequest struct {
	SiteID       string   `json:"site_id"`
	DeviceID     string   `json:"device_id"`
	PowerReading *float64 `json:"power_reading"`
	Timestamp    string   `json:"timestamp"`
}

type readingsResponse struct {
	SiteID   string                        `json:"site_id"`
	Readings []readingdomain.StoredReading `json:"readings"`
}

func (s *Server) CreateReading(c *gin.Context) {
	var req createReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.PowerReading == nil {
		AbortWithError(c, readingdomain.ErrInvalidPowerReading)
		return
	}

	id, err := s.readingsvc.Ingest(c.Request.Context(), readingdomain.Reading{
		SiteID:       req.SiteID,
		DeviceID:     req.DeviceID,
		PowerReading: *req.PowerReading,
		Timestamp:    req.Timestamp,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":    "accepted",
		"stream_id": id,
	})
}

func (s *Server) ListSiteReadings(c *gin.Context) {
	siteID := c.Param("site_id")

	readings, err := s.readingsvc.ListBySite(c.Request.Context(), siteID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if readings == nil {
		readings = []readingdomain.StoredReading{}
	}

	c.JSON(http.StatusOK, readingsResponse{
		SiteID:   siteID,
		Readings: readings,
	})
}
