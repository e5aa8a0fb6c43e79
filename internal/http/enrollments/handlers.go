package enrollments

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karouieya6/enrollmentservice/internal/http/auth"
	"github.com/karouieya6/enrollmentservice/internal/http/common"
	"github.com/karouieya6/enrollmentservice/internal/usecase"
)

type Handler struct {
	Service *usecase.EnrollmentService
}

func NewHandler(service *usecase.EnrollmentService) *Handler {
	return &Handler{Service: service}
}

type enrollmentRequest struct {
	CourseID int64 `json:"courseId"`
}

// HandleEnroll enrolls the requesting user in a course. The user identity
// comes from the authenticated credential, never from the request body.
func (h *Handler) HandleEnroll(c *gin.Context) {
	var req enrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	record, err := h.Service.Enroll(c.Request.Context(), usecase.EnrollInput{
		Credential: auth.CredentialFromContext(c),
		CourseID:   req.CourseID,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.Success(common.ToEnrollmentResponse(record)))
}

func (h *Handler) HandleUnenroll(c *gin.Context) {
	var req enrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	err := h.Service.Unenroll(c.Request.Context(), usecase.UnenrollInput{
		Credential: auth.CredentialFromContext(c),
		CourseID:   req.CourseID,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.Success(nil))
}

func (h *Handler) HandleListAll(c *gin.Context) {
	records, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	resp := make([]common.EnrollmentResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, common.ToEnrollmentResponse(record))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) HandleListByUser(c *gin.Context) {
	userID, ok := common.ParseInt64Param(c, "userId")
	if !ok {
		return
	}
	page := common.ParseIntQueryDefault(c, "page", 1)
	size := common.ParseIntQueryDefault(c, "size", usecase.DefaultPageSize)
	result, err := h.Service.ListByUser(c.Request.Context(), usecase.ListByUserInput{
		UserID: userID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.Success(common.ToPageResponse(result)))
}

func (h *Handler) HandleCountByUser(c *gin.Context) {
	userID, ok := common.ParseInt64Param(c, "userId")
	if !ok {
		return
	}
	count, err := h.Service.CountByUser(c.Request.Context(), userID)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) HandleCheck(c *gin.Context) {
	userID, ok := common.ParseInt64Query(c, "userId")
	if !ok {
		return
	}
	courseID, ok := common.ParseInt64Query(c, "courseId")
	if !ok {
		return
	}
	enrolled, err := h.Service.IsEnrolled(c.Request.Context(), userID, courseID)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrolled": enrolled})
}

func (h *Handler) HandleGetByID(c *gin.Context) {
	id, ok := common.ParseInt64Param(c, "id")
	if !ok {
		return
	}
	record, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.ToEnrollmentResponse(record))
}
