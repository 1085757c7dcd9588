package controller

import (
	"exam_hub_backend/internal/service"
	"exam_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// SubmitAnswerRequest 提交答案表单，file 与 answerUrl 二选一
// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	ExamID    uint   `form:"examId" binding:"required"`
	AnswerURL string `form:"answerUrl"`
}

// SubmitAnswer godoc
// @Summary 提交答案（学生）
// @Description 每场考试只能提交一次，不支持重新提交
// @Tags 提交
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param examId formData int true "考试ID"
// @Param file formData file false "答案文件"
// @Param answerUrl formData string false "已上传答案的外部地址"
// @Success 201 {object} util.Response{data=model.Submission} "提交成功"
// @Failure 400 {object} util.Response "参数错误或重复提交"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/submissions [post]
func (c *SubmissionController) SubmitAnswer(ctx *gin.Context) {
	var req SubmitAnswerRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, "examId is required")
		return
	}

	input := service.SubmitInput{ExamID: req.ExamID, AnswerURL: req.AnswerURL}
	if fh, err := ctx.FormFile("file"); err == nil {
		upload, f, err := openUpload(fh)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		defer f.Close()
		input.File = upload
	}

	principal := util.GetPrincipal(ctx)
	sub, err := c.SubmissionService.Submit(ctx.Request.Context(), principal.UserID(), input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// ListExamSubmissions godoc
// @Summary 某场考试的提交
// @Description 试卷创建者与管理员看到全部提交，学生只看到自己的
// @Tags 提交
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "考试ID"
// @Success 200 {object} util.Response{data=[]model.Submission} "成功"
// @Failure 403 {object} util.Response "不是试卷创建者"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/submissions/{examId} [get]
func (c *SubmissionController) ListExamSubmissions(ctx *gin.Context) {
	examID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid exam ID")
		return
	}

	subs, err := c.SubmissionService.ListForExam(ctx.Request.Context(), util.GetPrincipal(ctx), examID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// ListSubmissions godoc
// @Summary 提交列表（教师/管理员）
// @Tags 提交
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Submission} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/submissions [get]
func (c *SubmissionController) ListSubmissions(ctx *gin.Context) {
	subs, err := c.SubmissionService.List(ctx.Request.Context(), util.GetPrincipal(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}

// GetAnswerFile godoc
// @Summary 下载答案文件
// @Description 提交者本人、试卷创建者和管理员可以下载
// @Tags 提交
// @Security ApiKeyAuth
// @Param id path int true "提交ID"
// @Success 200 {file} binary "文件内容"
// @Success 302 "重定向到外部地址"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "提交不存在"
// @Router /api/submissions/file/{id} [get]
func (c *SubmissionController) GetAnswerFile(ctx *gin.Context) {
	id, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid submission ID")
		return
	}

	res, err := c.SubmissionService.ResolveAnswer(ctx.Request.Context(), util.GetPrincipal(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	writeFileResolution(ctx, res)
}
