package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sagarghai/growth-tools-api/application/ports/inbound"
	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
	"github.com/sagarghai/growth-tools-api/domain"
	"github.com/sagarghai/growth-tools-api/infrastructure/gin_interface/dto"
)

const apiVersion = "1.0.0"

type VideoController interface {
	RegisterRoutes(g *gin.Engine)
}

type videoController struct {
	logger              outbound.LoggerPort
	slideshowPipeline   inbound.SlideshowPipelinePort
	chatPipeline        inbound.ChatMockupPipelinePort
	maxSlides           int
	defaultBotName      string
	replicateConfigured bool
}

func NewVideoController(
	logger outbound.LoggerPort,
	slideshowPipeline inbound.SlideshowPipelinePort,
	chatPipeline inbound.ChatMockupPipelinePort,
	maxSlides int,
	defaultBotName string,
	replicateConfigured bool) VideoController {
	return &videoController{
		logger:              logger,
		slideshowPipeline:   slideshowPipeline,
		chatPipeline:        chatPipeline,
		maxSlides:           maxSlides,
		defaultBotName:      defaultBotName,
		replicateConfigured: replicateConfigured,
	}
}

func (v *videoController) RegisterRoutes(g *gin.Engine) {
	g.GET("/", v.Home)
	g.GET("/health", v.Health)
	g.POST("/slideshow", v.CreateSlideshow)
	g.POST("/whatsapp", v.CreateWhatsappMockup)
}

func (v *videoController) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Growth Tools API",
		"version":     apiVersion,
		"description": "Simple API for WhatsApp mockups and AI slideshows",
		"endpoints": gin.H{
			"slideshow": "POST /slideshow - Generate slideshow from text prompts",
			"whatsapp":  "POST /whatsapp - Generate WhatsApp mockup video",
			"health":    "GET /health - Health check",
		},
		"examples": gin.H{
			"slideshow": gin.H{
				"url":     "POST /slideshow",
				"body":    gin.H{"slides": []string{"sunset over mountains", "peaceful lake"}},
				"returns": "MP4 video file",
			},
			"whatsapp": gin.H{
				"url": "POST /whatsapp",
				"body": gin.H{
					"messages": []gin.H{
						{"role": "user", "text": "Hello!"},
						{"role": "bot", "text": "Hi there!"},
					},
					"bot_name": "Mystic Maya",
				},
				"returns": "MP4 video file",
			},
		},
	})
}

func (v *videoController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":               "OK",
		"replicate_configured": v.replicateConfigured,
		"endpoints_active":     []string{"slideshow", "whatsapp"},
	})
}

func (v *videoController) CreateSlideshow(c *gin.Context) {
	var req dto.SlideshowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		v.respondError(c, domain.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(v.maxSlides); err != nil {
		v.respondError(c, err)
		return
	}

	requestID := uuid.NewString()[:8]
	v.logger.InfoWithFields("Generating slideshow", map[string]interface{}{
		"request_id": requestID,
		"slides":     len(req.Slides),
	})

	// Detached from the client connection so a disconnect does not abort
	// in-flight generation; the pipeline finishes and cleans up either way.
	res, err := v.slideshowPipeline.CreateSlideshow(context.WithoutCancel(c.Request.Context()), inbound.SlideshowParams{
		RequestID: requestID,
		Slides:    req.Slides,
	})
	if err != nil {
		v.respondError(c, err)
		return
	}
	defer res.Cleanup()

	c.FileAttachment(res.Artifact.FileName, "slideshow_"+requestID+".mp4")
}

func (v *videoController) CreateWhatsappMockup(c *gin.Context) {
	var req dto.WhatsappRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		v.respondError(c, domain.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		v.respondError(c, err)
		return
	}

	requestID := uuid.NewString()[:8]
	v.logger.InfoWithFields("Generating WhatsApp mockup", map[string]interface{}{
		"request_id": requestID,
		"messages":   len(req.Messages),
	})

	res, err := v.chatPipeline.CreateChatMockup(context.WithoutCancel(c.Request.Context()), inbound.ChatMockupParams{
		RequestID: requestID,
		Messages:  req.ToMessages(),
		BotName:   req.DisplayName(v.defaultBotName),
	})
	if err != nil {
		v.respondError(c, err)
		return
	}
	defer res.Cleanup()

	c.FileAttachment(res.Artifact.FileName, "whatsapp_"+requestID+".mp4")
}

func (v *videoController) respondError(c *gin.Context, err error) {
	pErr, ok := domain.AsPipelineError(err)
	if !ok {
		v.logger.Error(err, "Unclassified pipeline failure")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: dto.ErrorBody{
			Kind:    "internal_error",
			Message: err.Error(),
		}})
		return
	}

	status := http.StatusInternalServerError
	switch pErr.Kind {
	case domain.ValidationError:
		status = http.StatusBadRequest
	case domain.GenerationError:
		status = http.StatusBadGateway
		if pErr.Timeout {
			status = http.StatusGatewayTimeout
		}
	case domain.EncodingError:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		v.logger.Error(pErr, "Pipeline failure")
	}

	c.JSON(status, dto.ErrorResponse{Error: dto.ErrorBody{
		Kind:    string(pErr.Kind),
		Message: pErr.Message,
		Detail:  pErr.Detail,
	}})
}
