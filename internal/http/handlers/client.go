package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/http/response"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/services"
)

type ClientHandler struct {
	clients services.ClientService
}

func NewClientHandler(clients services.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// parseID reads a uuid path parameter. A malformed id cannot match any row,
// so it is answered like a missing one.
func parseID(c *gin.Context, name, code, notFoundMsg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, code, errors.New(notFoundMsg))
		return uuid.Nil, false
	}
	return id, true
}

// GET /admin-data/:client_id
func (h *ClientHandler) AdminData(c *gin.Context) {
	id, ok := parseID(c, "client_id", "client_not_found", "Client not found")
	if !ok {
		return
	}
	data, err := h.clients.AdminData(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err, "admin_data_failed")
		return
	}
	response.RespondOK(c, data)
}

// GET /public-client/:client_id
func (h *ClientHandler) PublicClient(c *gin.Context) {
	id, ok := parseID(c, "client_id", "client_not_found", "Invalid QR")
	if !ok {
		return
	}
	data, err := h.clients.PublicClient(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err, "public_client_failed")
		return
	}
	response.RespondOK(c, data)
}

// GET /admin/clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	out, err := h.clients.ListClients(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err, "list_clients_failed")
		return
	}
	response.RespondOK(c, gin.H{"clients": out})
}

// GET /admin/clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := parseID(c, "id", "client_not_found", "Client not found")
	if !ok {
		return
	}
	client, err := h.clients.GetClient(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err, "get_client_failed")
		return
	}
	response.RespondOK(c, gin.H{"client": client})
}

// POST /admin/clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req services.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	client, err := h.clients.CreateClient(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err, "create_client_failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"client": client})
}

// PUT /admin/clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := parseID(c, "id", "client_not_found", "Client not found")
	if !ok {
		return
	}
	var req services.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	client, err := h.clients.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		response.RespondErr(c, err, "update_client_failed")
		return
	}
	response.RespondOK(c, gin.H{"client": client})
}

// GET /admin/client-types
func (h *ClientHandler) ListClientTypes(c *gin.Context) {
	out, err := h.clients.ListClientTypes(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err, "list_client_types_failed")
		return
	}
	response.RespondOK(c, gin.H{"client_types": out})
}

// GET /admin/client-types/:id
func (h *ClientHandler) GetClientType(c *gin.Context) {
	id, ok := parseID(c, "id", "client_type_not_found", "Client type not found")
	if !ok {
		return
	}
	ct, err := h.clients.GetClientType(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err, "get_client_type_failed")
		return
	}
	response.RespondOK(c, gin.H{"client_type": ct})
}

// POST /admin/client-types
func (h *ClientHandler) CreateClientType(c *gin.Context) {
	var req services.ClientTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ct, err := h.clients.CreateClientType(c.Request.Context(), req)
	if err != nil {
		response.RespondErr(c, err, "create_client_type_failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"client_type": ct})
}

// PUT /admin/client-types/:id
func (h *ClientHandler) UpdateClientType(c *gin.Context) {
	id, ok := parseID(c, "id", "client_type_not_found", "Client type not found")
	if !ok {
		return
	}
	var req services.ClientTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ct, err := h.clients.UpdateClientType(c.Request.Context(), id, req)
	if err != nil {
		response.RespondErr(c, err, "update_client_type_failed")
		return
	}
	response.RespondOK(c, gin.H{"client_type": ct})
}
