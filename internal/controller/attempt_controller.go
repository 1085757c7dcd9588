package controller

import (
	"exam_hub_backend/internal/service"
	"exam_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// StartAttemptRequest 开始作答请求
// swagger:model StartAttemptRequest
type StartAttemptRequest struct {
	ExamID uint `json:"examId" binding:"required"`
}

// UpdateTimeRequest 上报剩余时间，负数按 0 处理
// swagger:model UpdateTimeRequest
type UpdateTimeRequest struct {
	TimeRemaining *int `json:"timeRemaining" binding:"required"`
}

// StartAttempt godoc
// @Summary 开始或继续作答（学生）
// @Description 首次开始时按考试时长计时；已有未完成的记录则继续，不重置剩余时间
// @Tags 作答
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body StartAttemptRequest true "考试ID"
// @Success 200 {object} util.Response{data=service.AttemptView} "成功"
// @Failure 400 {object} util.Response "已提交或已完成"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/exam-attempts/start [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	var req StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "examId is required")
		return
	}

	principal := util.GetPrincipal(ctx)
	view, err := c.AttemptService.Start(ctx.Request.Context(), principal.UserID(), req.ExamID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	message := "Exam attempt started"
	if view.Resumed {
		message = "Exam attempt resumed"
	}
	util.SuccessMessage(ctx, message, view)
}

// GetAttemptStatus godoc
// @Summary 查询作答状态（学生）
// @Description 返回实时计算的剩余时间，尚未开始时 data 为空
// @Tags 作答
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "考试ID"
// @Success 200 {object} util.Response{data=service.AttemptView} "成功"
// @Router /api/exam-attempts/{examId} [get]
func (c *AttemptController) GetAttemptStatus(ctx *gin.Context) {
	examID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid exam ID")
		return
	}

	principal := util.GetPrincipal(ctx)
	view, err := c.AttemptService.GetStatus(ctx.Request.Context(), principal.UserID(), examID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	if view == nil {
		util.SuccessMessage(ctx, "No attempt yet", nil)
		return
	}
	util.Success(ctx, view)
}

// UpdateTime godoc
// @Summary 上报剩余时间（学生）
// @Tags 作答
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "作答ID"
// @Param request body UpdateTimeRequest true "剩余秒数"
// @Success 200 {object} util.Response{data=service.AttemptView} "成功"
// @Failure 404 {object} util.Response "作答不存在"
// @Router /api/exam-attempts/{attemptId}/time [put]
func (c *AttemptController) UpdateTime(ctx *gin.Context) {
	attemptID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid attempt ID")
		return
	}

	var req UpdateTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "timeRemaining is required")
		return
	}

	principal := util.GetPrincipal(ctx)
	view, err := c.AttemptService.UpdateTime(ctx.Request.Context(), attemptID, principal.UserID(), *req.TimeRemaining)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// PauseAttempt godoc
// @Summary 暂停作答（学生）
// @Tags 作答
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "作答ID"
// @Success 200 {object} util.Response{data=service.AttemptView} "成功"
// @Failure 404 {object} util.Response "作答不存在"
// @Router /api/exam-attempts/{attemptId}/pause [put]
func (c *AttemptController) PauseAttempt(ctx *gin.Context) {
	attemptID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid attempt ID")
		return
	}

	principal := util.GetPrincipal(ctx)
	view, err := c.AttemptService.Pause(ctx.Request.Context(), attemptID, principal.UserID())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// CompleteAttempt godoc
// @Summary 完成作答（学生）
// @Description 已过期的作答同样可以完成
// @Tags 作答
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "作答ID"
// @Success 200 {object} util.Response{data=service.AttemptView} "成功"
// @Failure 404 {object} util.Response "作答不存在"
// @Router /api/exam-attempts/{attemptId}/complete [put]
func (c *AttemptController) CompleteAttempt(ctx *gin.Context) {
	attemptID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid attempt ID")
		return
	}

	principal := util.GetPrincipal(ctx)
	view, err := c.AttemptService.Complete(ctx.Request.Context(), attemptID, principal.UserID())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Exam attempt completed", view)
}
