package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/d60-Lab/quickai/internal/api/middleware"
	"github.com/d60-Lab/quickai/pkg/response"
)

// resumeMaxBytes caps resume uploads at 5 MB before extraction runs.
const resumeMaxBytes = 5 * 1024 * 1024

type generateArticleRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Length int    `json:"length"`
}

type generateBlogTitleRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type generateImageRequest struct {
	Prompt  string `json:"prompt" binding:"required"`
	Publish bool   `json:"publish"`
}

type removeObjectForm struct {
	Object string `form:"object" binding:"required,singleword"`
}

// GenerateArticle writes an article with the completion provider.
// @Summary Generate an article
// @Tags ai
// @Accept json
// @Produce json
// @Param request body generateArticleRequest true "prompt and target length"
// @Success 200 {object} map[string]interface{}
// @Router /api/ai/generate-article [post]
func (h *Handler) GenerateArticle(c *gin.Context) {
	var req generateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailErr(c, "Error generating article", err)
		return
	}
	content, err := h.gen.GenerateArticle(c.Request.Context(), middleware.UserID(c), req.Prompt, req.Length)
	if err != nil {
		failFromError(c, "Error generating article", err)
		return
	}
	response.Success(c, gin.H{"content": content})
}

// GenerateBlogTitle suggests blog titles for a topic.
// @Summary Generate a blog title
// @Tags ai
// @Accept json
// @Produce json
// @Param request body generateBlogTitleRequest true "prompt"
// @Success 200 {object} map[string]interface{}
// @Router /api/ai/generate-blog-title [post]
func (h *Handler) GenerateBlogTitle(c *gin.Context) {
	var req generateBlogTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailErr(c, "Error generating blog title", err)
		return
	}
	content, err := h.gen.GenerateBlogTitle(c.Request.Context(), middleware.UserID(c), req.Prompt)
	if err != nil {
		failFromError(c, "Error generating blog title", err)
		return
	}
	response.Success(c, gin.H{"content": content})
}

// GenerateImage renders a prompt to an image (premium only).
// @Summary Generate an image
// @Tags ai
// @Accept json
// @Produce json
// @Param request body generateImageRequest true "prompt and publish flag"
// @Success 200 {object} map[string]interface{}
// @Router /api/ai/generate-image [post]
func (h *Handler) GenerateImage(c *gin.Context) {
	var req generateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailErr(c, "Error generating image", err)
		return
	}
	secureURL, err := h.gen.GenerateImage(c.Request.Context(), middleware.UserID(c), req.Prompt, req.Publish)
	if err != nil {
		failFromError(c, "Error generating image", err)
		return
	}
	response.Success(c, gin.H{"secure_url": secureURL})
}

// RemoveImageBackground strips the background from an uploaded image
// (premium only).
// @Summary Remove image background
// @Tags ai
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "image file"
// @Success 200 {object} map[string]interface{}
// @Router /api/ai/remove-image-background [post]
func (h *Handler) RemoveImageBackground(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, "No image file uploaded")
		return
	}
	path, cleanup, err := h.stageUpload(c, file)
	if err != nil {
		response.FailErr(c, "Error removing background image", err)
		return
	}
	defer cleanup()

	secureURL, err := h.gen.RemoveBackground(c.Request.Context(), middleware.UserID(c), path)
	if err != nil {
		failFromError(c, "Error removing background image", err)
		return
	}
	response.Success(c, gin.H{"secure_url": secureURL})
}

// RemoveImageObject erases a named object from an uploaded image (premium
// only). The object name must be a single word.
// @Summary Remove an object from an image
// @Tags ai
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "image file"
// @Param object formData string true "object to remove (single word)"
// @Success 200 {object} map[string]interface{}
// @Router /api/ai/remove-image-object [post]
func (h *Handler) RemoveImageObject(c *gin.Context) {
	var form removeObjectForm
	if err := c.ShouldBind(&form); err != nil {
		response.Fail(c, "Object to remove is required and must be a single word")
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, "No image file uploaded")
		return
	}
	path, cleanup, err := h.stageUpload(c, file)
	if err != nil {
		response.FailErr(c, "Error removing object from image", err)
		return
	}
	defer cleanup()

	imageURL, err := h.gen.RemoveObject(c.Request.Context(), middleware.UserID(c), path, form.Object)
	if err != nil {
		failFromError(c, "Error removing object from image", err)
		return
	}
	response.Success(c, gin.H{"imageUrl": imageURL})
}

// ResumeReview reviews an uploaded PDF resume (premium only, max 5 MB).
// @Summary Review a resume
// @Tags ai
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "resume PDF (max 5 MB)"
// @Success 200 {object} map[string]interface{}
// @Router /api/ai/resume-review [post]
func (h *Handler) ResumeReview(c *gin.Context) {
	file, err := c.FormFile("resume")
	if err != nil {
		response.Fail(c, "No resume file uploaded")
		return
	}
	if file.Size > resumeMaxBytes {
		response.Fail(c, "File size should be less than 5MB")
		return
	}
	path, cleanup, err := h.stageUpload(c, file)
	if err != nil {
		response.FailErr(c, "Error reviewing resume", err)
		return
	}
	defer cleanup()

	content, err := h.gen.ReviewResume(c.Request.Context(), middleware.UserID(c), path)
	if err != nil {
		failFromError(c, "Error reviewing resume", err)
		return
	}
	response.Success(c, gin.H{"content": content})
}

// stageUpload copies a multipart file to a temp path for provider upload.
func (h *Handler) stageUpload(c *gin.Context, file *multipart.FileHeader) (string, func(), error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("quickai-%s%s", uuid.New().String(), filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}
