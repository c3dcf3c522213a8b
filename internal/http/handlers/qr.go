package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/http/response"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/services"
)

type QRHandler struct {
	qr         services.QRService
	reviewBase string
}

// NewQRHandler builds the QR routes. Scans redirect to
// reviewBase + "/review/<client_id>"; reviewBase may be empty for a
// same-origin frontend.
func NewQRHandler(qr services.QRService, reviewBase string) *QRHandler {
	return &QRHandler{qr: qr, reviewBase: strings.TrimRight(reviewBase, "/")}
}

type qrRequest struct {
	Token    string `json:"token"`
	ClientID string `json:"client_id"`
}

// bindQR reads token and client_id from the query string, falling back to
// a JSON body.
func bindQR(c *gin.Context) qrRequest {
	req := qrRequest{Token: c.Query("token"), ClientID: c.Query("client_id")}
	if req.Token == "" && c.Request.ContentLength != 0 {
		var body qrRequest
		if err := c.ShouldBindJSON(&body); err == nil {
			req = body
		}
	}
	req.Token = strings.TrimSpace(req.Token)
	req.ClientID = strings.TrimSpace(req.ClientID)
	return req
}

// POST /admin/qr/create?count=50
func (h *QRHandler) Create(c *gin.Context) {
	count := 0
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_count", errors.New("count must be a positive integer"))
			return
		}
		count = n
	}
	batch, err := h.qr.Create(c.Request.Context(), count)
	if err != nil {
		response.RespondErr(c, err, "qr_create_failed")
		return
	}
	response.RespondOK(c, batch)
}

// GET /admin/qr/free
func (h *QRHandler) Free(c *gin.Context) {
	rows, err := h.qr.ListFree(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err, "qr_list_failed")
		return
	}
	response.RespondOK(c, rows)
}

// POST /admin/qr/assign?token=&client_id=
func (h *QRHandler) Assign(c *gin.Context) {
	req := bindQR(c)
	if req.Token == "" || req.ClientID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("token and client_id required"))
		return
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "client_not_found", errors.New("Client not found"))
		return
	}
	if err := h.qr.Assign(c.Request.Context(), req.Token, clientID); err != nil {
		response.RespondErr(c, err, "qr_assign_failed")
		return
	}
	response.RespondOK(c, gin.H{"status": "assigned", "token": req.Token})
}

// POST /admin/qr/unassign?token=
func (h *QRHandler) Unassign(c *gin.Context) {
	req := bindQR(c)
	if req.Token == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("token required"))
		return
	}
	if err := h.qr.Unassign(c.Request.Context(), req.Token); err != nil {
		response.RespondErr(c, err, "qr_unassign_failed")
		return
	}
	response.RespondOK(c, gin.H{"status": "unassigned", "token": req.Token})
}

// POST /admin/qr/disable?token=
func (h *QRHandler) Disable(c *gin.Context) {
	req := bindQR(c)
	if req.Token == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("token required"))
		return
	}
	if err := h.qr.Disable(c.Request.Context(), req.Token); err != nil {
		response.RespondErr(c, err, "qr_disable_failed")
		return
	}
	response.RespondOK(c, gin.H{"status": "disabled", "token": req.Token})
}

// GET /admin/qr-stats/:client_id
func (h *QRHandler) Stats(c *gin.Context) {
	id, ok := parseID(c, "client_id", "client_not_found", "No QR data found")
	if !ok {
		return
	}
	stats, err := h.qr.Stats(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err, "qr_stats_failed")
		return
	}
	response.RespondOK(c, stats)
}

// GET /r/:token
func (h *QRHandler) Redirect(c *gin.Context) {
	clientID, err := h.qr.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.RespondErr(c, err, "qr_resolve_failed")
		return
	}
	c.Redirect(http.StatusFound, h.reviewBase+"/review/"+clientID.String())
}

// GET /api/qr/:token
func (h *QRHandler) Lookup(c *gin.Context) {
	clientID, err := h.qr.Lookup(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.RespondErr(c, err, "qr_lookup_failed")
		return
	}
	response.RespondOK(c, gin.H{"client_id": clientID})
}
