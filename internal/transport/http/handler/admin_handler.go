package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skyshop-account-api/internal/domain"
	"skyshop-account-api/internal/errs"
	"skyshop-account-api/internal/service"
	"skyshop-account-api/internal/transport/http/response"
)

type Admin struct {
	svc *service.Admin
}

func NewAdmin(svc *service.Admin) *Admin { return &Admin{svc: svc} }

type listQ struct {
	Offset int    `form:"offset,default=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"`    // matches email or name
	Role   string `form:"role"` // exact role filter
}

func (h *Admin) List(c *gin.Context) {
	var q listQ
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, errs.BadRequest(err.Error()))
		return
	}
	users, total, err := h.svc.List(c.Request.Context(), domain.ListFilter{
		Offset: q.Offset, Limit: q.Limit, Query: q.Q, Role: q.Role,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"users": users, "total": total})
}

func (h *Admin) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": u})
}

type updateRoleIn struct {
	Name  string `json:"name" binding:"required,min=2,max=30"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

func (h *Admin) UpdateRole(c *gin.Context) {
	var in updateRoleIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, errs.BadRequest(err.Error()))
		return
	}
	u, err := h.svc.UpdateRole(c.Request.Context(), c.Param("id"), in.Name, in.Email, in.Role)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"user": u})
}

func (h *Admin) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "user deleted successfully"})
}
