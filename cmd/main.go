package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
	"github.com/sagarghai/growth-tools-api/application/services"
	"github.com/sagarghai/growth-tools-api/config"
	"github.com/sagarghai/growth-tools-api/infrastructure/adapters"
	"github.com/sagarghai/growth-tools-api/infrastructure/gin_interface/controllers"
	"github.com/sagarghai/growth-tools-api/middleware"
)

func main() {
	_ = godotenv.Load()

	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	replicateConfig, err := config.GetReplicateConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get replicate config")
	}

	encoderConfig, err := config.GetEncoderConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get encoder config")
	}

	chatConfig, err := config.GetChatConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get chat config")
	}

	storeConfig, err := config.GetStoreConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get store config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	workspaceManager, err := adapters.NewWorkspaceManager(serverConfig.WorkspaceDir, zeroLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create workspace manager")
	}

	videoStore, err := buildVideoStore(storeConfig, zeroLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create video store")
	}

	contentFetcher := adapters.NewContentFetcher(zeroLogger)
	imageGenerator := adapters.NewReplicateImageGenerator(contentFetcher, replicateConfig, zeroLogger)
	chatRenderer := adapters.NewChatFrameRenderer(chatConfig, zeroLogger)
	soundSynthesizer := adapters.NewBeepSynthesizer(zeroLogger)
	videoEncoder := adapters.NewFFmpegEncoder(encoderConfig, zeroLogger)

	promptStreamer := services.NewSlidePromptStreamer(workerPool)
	frameProducer := services.NewSlideFrameProducer(zeroLogger, imageGenerator, workerPool,
		replicateConfig.MaxConcurrency, encoderConfig.SlideDuration)

	slideshowPipeline := services.NewSlideshowPipeline(zeroLogger, workerPool, workspaceManager,
		promptStreamer, frameProducer, videoEncoder, videoStore, encoderConfig.Width, encoderConfig.Height)
	chatPipeline := services.NewChatMockupPipeline(zeroLogger, workspaceManager,
		chatRenderer, soundSynthesizer, videoEncoder, videoStore)

	videoController := controllers.NewVideoController(zeroLogger, slideshowPipeline, chatPipeline,
		serverConfig.MaxSlides, chatConfig.DefaultBotName, replicateConfig.ApiToken != "")

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(cors.Default())
	router.Use(middleware.RequestLogger(zeroLogger))

	videoController.RegisterRoutes(router)

	if err := router.Run(":" + serverConfig.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}

func buildVideoStore(storeConfig *config.StoreConfig, logger outbound.LoggerPort) (outbound.VideoStorePort, error) {
	if storeConfig.S3Bucket != "" {
		return adapters.NewS3VideoStore(storeConfig, logger)
	}
	return adapters.NewLocalVideoStore(storeConfig.OutputDir, logger)
}
