package controller

import (
	"exam_hub_backend/internal/service"
	"exam_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService  *service.ExamService
	FileResolver *service.FileResolver
}

func NewExamController(examService *service.ExamService, resolver *service.FileResolver) *ExamController {
	return &ExamController{ExamService: examService, FileResolver: resolver}
}

// CreateExamRequest 创建试卷表单
// swagger:model CreateExamRequest
type CreateExamRequest struct {
	Title           string `form:"title"`
	DurationMinutes int    `form:"durationMinutes"`
}

// CreateExam godoc
// @Summary 上传试卷（教师）
// @Description 上传 PDF 试卷文件并创建试卷，创建后默认启用
// @Tags 试卷
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "试卷标题，最多100字符"
// @Param durationMinutes formData int true "考试时长（分钟，1-300）"
// @Param file formData file true "试卷文件"
// @Success 201 {object} util.Response{data=model.Exam} "创建成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Failure 403 {object} util.Response "无权限"
// @Failure 503 {object} util.Response "存储不可用"
// @Router /api/exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req CreateExamRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, "Invalid form data")
		return
	}

	input := service.CreateExamInput{Title: req.Title, DurationMinutes: req.DurationMinutes}
	if fh, err := ctx.FormFile("file"); err == nil {
		upload, f, err := openUpload(fh)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		defer f.Close()
		input.File = upload
	}

	exam, err := c.ExamService.CreateExam(ctx.Request.Context(), util.GetPrincipal(ctx), input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// GetExamFile godoc
// @Summary 获取试卷文件
// @Description 历史外部地址返回 302 重定向，存储中的文件以 inline 方式输出；未启用的试卷返回 403
// @Tags 试卷
// @Produce application/pdf
// @Param id path string true "文件 ID"
// @Success 200 {file} binary "文件内容"
// @Success 302 "重定向到外部地址"
// @Failure 400 {object} util.Response "引用格式错误"
// @Failure 403 {object} util.Response "试卷未启用"
// @Failure 404 {object} util.Response "文件不存在"
// @Router /api/exams/file/{id} [get]
func (c *ExamController) GetExamFile(ctx *gin.Context) {
	// 只接受存储中的文件 ID，外部地址由试卷记录中的历史 URL 决定
	res, err := c.FileResolver.Resolve(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	writeFileResolution(ctx, res)
}

// ListExams godoc
// @Summary 试卷列表
// @Description 学生只看到已启用的试卷，教师只看到自己创建的，管理员看到全部
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Exam} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	exams, err := c.ExamService.ListExams(ctx.Request.Context(), util.GetPrincipal(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// GetExam godoc
// @Summary 试卷详情
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response{data=model.Exam} "成功"
// @Failure 403 {object} util.Response "无权查看"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	id, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid exam ID")
		return
	}

	exam, err := c.ExamService.GetExam(ctx.Request.Context(), util.GetPrincipal(ctx), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// CancelExam godoc
// @Summary 取消试卷（创建者）
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response{data=model.Exam} "成功"
// @Failure 403 {object} util.Response "不是试卷创建者"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/exams/{id}/cancel [put]
func (c *ExamController) CancelExam(ctx *gin.Context) {
	c.setActive(ctx, false)
}

// ActivateExam godoc
// @Summary 启用试卷（创建者）
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response{data=model.Exam} "成功"
// @Failure 403 {object} util.Response "不是试卷创建者"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/exams/{id}/activate [put]
func (c *ExamController) ActivateExam(ctx *gin.Context) {
	c.setActive(ctx, true)
}

func (c *ExamController) setActive(ctx *gin.Context, active bool) {
	id, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "Invalid exam ID")
		return
	}

	exam, err := c.ExamService.SetActive(ctx.Request.Context(), util.GetPrincipal(ctx), id, active)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	message := "Exam cancelled"
	if active {
		message = "Exam activated"
	}
	util.SuccessMessage(ctx, message, exam)
}
