package adapters

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
	"github.com/sagarghai/growth-tools-api/config"
	"github.com/sagarghai/growth-tools-api/domain"
)

// WhatsApp dark theme palette.
var (
	chatBackgroundColor = color.RGBA{R: 17, G: 27, B: 33, A: 255}
	chatHeaderColor     = color.RGBA{R: 42, G: 57, B: 66, A: 255}
	userBubbleColor     = color.RGBA{R: 0, G: 95, B: 115, A: 255}
	botBubbleColor      = color.RGBA{R: 42, G: 57, B: 66, A: 255}
	chatTextColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	chatTimeColor       = color.RGBA{R: 168, G: 168, B: 168, A: 255}
	onlineColor         = color.RGBA{R: 76, G: 175, B: 80, A: 255}
	avatarColor         = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	typingDotColor      = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

const (
	headerHeight    = 100
	bubbleMarginX   = 20
	bubbleGap       = 10
	bubblePadding   = 15
	bubbleRadius    = 15
	maxBubbleWidth  = 250
	textLineHeight  = 20
	timestampHeight = 15
)

type chatFrameRenderer struct {
	logger     outbound.LoggerPort
	chatConfig *config.ChatConfig
	face       font.Face
	clock      func() time.Time
}

func NewChatFrameRenderer(chatConfig *config.ChatConfig, logger outbound.LoggerPort) outbound.ChatFrameRendererPort {
	return &chatFrameRenderer{
		logger:     logger,
		chatConfig: chatConfig,
		face:       basicfont.Face7x13,
		clock:      time.Now,
	}
}

// RenderSequence emits one still per visual phase: a typing indicator before
// every bot message, then the conversation with the message revealed. The
// pause between messages is folded into the revealed frame's duration, and
// each sound cue lands at the moment its message appears.
func (r *chatFrameRenderer) RenderSequence(ctx context.Context, workspace domain.Workspace,
	messages []domain.ChatMessage, botName string) ([]domain.Frame, []domain.SoundCue, error) {
	frames := make([]domain.Frame, 0, 2*len(messages))
	cues := make([]domain.SoundCue, 0, len(messages))
	shown := make([]domain.ChatMessage, 0, len(messages))

	var elapsed float64
	for i, message := range messages {
		if err := ctx.Err(); err != nil {
			return nil, nil, domain.NewGenerationError("chat rendering cancelled", "", err)
		}

		if message.Role != domain.UserRole {
			fileName, err := r.renderStill(workspace, len(frames), shown, true, botName)
			if err != nil {
				return nil, nil, err
			}
			frames = append(frames, domain.Frame{
				FileName: fileName,
				Duration: r.chatConfig.TypingDuration,
				Ordinal:  len(frames),
			})
			elapsed += r.chatConfig.TypingDuration
		}

		cues = append(cues, domain.SoundCue{
			Offset:   elapsed,
			Outgoing: message.Role == domain.UserRole,
		})

		shown = append(shown, message)
		fileName, err := r.renderStill(workspace, len(frames), shown, false, botName)
		if err != nil {
			return nil, nil, err
		}

		duration := r.chatConfig.MessageDuration
		if i < len(messages)-1 {
			duration += r.chatConfig.MessagePause
		}
		frames = append(frames, domain.Frame{
			FileName: fileName,
			Duration: duration,
			Ordinal:  len(frames),
		})
		elapsed += duration
	}

	return frames, cues, nil
}

func (r *chatFrameRenderer) renderStill(workspace domain.Workspace, ordinal int,
	shown []domain.ChatMessage, typing bool, botName string) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.chatConfig.Width, r.chatConfig.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(chatBackgroundColor), image.Point{}, draw.Src)

	r.drawHeader(img, botName)

	y := headerHeight + bubbleMarginX
	for _, message := range shown {
		y += r.drawBubble(img, message, y, botName) + bubbleGap
	}
	if typing {
		r.drawTypingIndicator(img, y)
	}

	fileName := workspace.Path(fmt.Sprintf("frame_%03d.png", ordinal))
	file, err := os.Create(fileName)
	if err != nil {
		return "", domain.NewGenerationError("failed to create chat frame file", "", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			r.logger.Error(closeErr, "Failed to close chat frame file")
		}
	}()

	if err := png.Encode(file, img); err != nil {
		return "", domain.NewGenerationError("failed to encode chat frame", "", err)
	}

	return fileName, nil
}

func (r *chatFrameRenderer) drawHeader(img *image.RGBA, botName string) {
	fillRect(img, 0, 0, r.chatConfig.Width, headerHeight, chatHeaderColor)
	fillCircle(img, 30, 50, 20, avatarColor)

	r.drawString(img, botName, 60, 52, chatTextColor)
	r.drawString(img, "online", 60, 72, onlineColor)

	timestamp := r.clock().Format("15:04")
	width := font.MeasureString(r.face, timestamp).Ceil()
	r.drawString(img, timestamp, r.chatConfig.Width-width-10, 28, chatTextColor)
}

// drawBubble renders one message bubble at vertical offset y and returns the
// bubble height. Bot bubbles get the display name as a leading line.
func (r *chatFrameRenderer) drawBubble(img *image.RGBA, message domain.ChatMessage, y int, botName string) int {
	maxTextWidth := maxBubbleWidth - 2*bubblePadding
	lines := wrapText(message.Text, maxTextWidth, r.face)

	isUser := message.Role == domain.UserRole
	nameLines := 0
	if !isUser && botName != "" {
		nameLines = 1
	}

	height := (nameLines+len(lines))*textLineHeight + 2*bubblePadding + timestampHeight

	widest := 0
	for _, line := range lines {
		if w := font.MeasureString(r.face, line).Ceil(); w > widest {
			widest = w
		}
	}
	if nameLines > 0 {
		if w := font.MeasureString(r.face, botName).Ceil(); w > widest {
			widest = w
		}
	}
	width := min(maxBubbleWidth, widest+2*bubblePadding)

	x := bubbleMarginX
	bubbleColor := botBubbleColor
	if isUser {
		x = r.chatConfig.Width - width - bubbleMarginX
		bubbleColor = userBubbleColor
	}

	fillRoundedRect(img, x, y, width, height, bubbleRadius, bubbleColor)

	textY := y + bubblePadding + 11
	if nameLines > 0 {
		r.drawString(img, botName, x+bubblePadding, textY, onlineColor)
		textY += textLineHeight
	}
	for _, line := range lines {
		r.drawString(img, line, x+bubblePadding, textY, chatTextColor)
		textY += textLineHeight
	}

	timestamp := r.clock().Format("15:04")
	tsWidth := font.MeasureString(r.face, timestamp).Ceil()
	r.drawString(img, timestamp, x+width-tsWidth-5, y+height-5, chatTimeColor)

	return height
}

func (r *chatFrameRenderer) drawTypingIndicator(img *image.RGBA, y int) {
	fillRoundedRect(img, bubbleMarginX, y, 60, 40, bubbleRadius, botBubbleColor)
	for i := 0; i < 3; i++ {
		fillCircle(img, bubbleMarginX+15+i*10, y+20, 3, typingDotColor)
	}
}

func (r *chatFrameRenderer) drawString(img *image.RGBA, text string, x int, baseline int, col color.RGBA) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: r.face,
		Dot:  fixed.P(x, baseline),
	}
	drawer.DrawString(text)
}

// wrapText splits text into lines that fit maxWidth. A single word wider
// than the bubble keeps its own line and may overflow, like the original.
func wrapText(text string, maxWidth int, face font.Face) []string {
	words := splitWords(text)
	lines := make([]string, 0, 1)
	current := ""

	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}

	return lines
}

func splitWords(text string) []string {
	words := make([]string, 0, 8)
	current := ""
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' {
			if current != "" {
				words = append(words, current)
				current = ""
			}
			continue
		}
		current += string(r)
	}
	if current != "" {
		words = append(words, current)
	}
	return words
}

func fillRect(img *image.RGBA, x, y, width, height int, col color.RGBA) {
	draw.Draw(img, image.Rect(x, y, x+width, y+height), image.NewUniform(col), image.Point{}, draw.Src)
}

func fillCircle(img *image.RGBA, cx, cy, radius int, col color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(cx+dx, cy+dy, col)
			}
		}
	}
}

func fillRoundedRect(img *image.RGBA, x, y, width, height, radius int, col color.RGBA) {
	if radius*2 > width {
		radius = width / 2
	}
	if radius*2 > height {
		radius = height / 2
	}

	fillRect(img, x+radius, y, width-2*radius, height, col)
	fillRect(img, x, y+radius, width, height-2*radius, col)
	fillCircle(img, x+radius, y+radius, radius, col)
	fillCircle(img, x+width-radius-1, y+radius, radius, col)
	fillCircle(img, x+radius, y+height-radius-1, radius, col)
	fillCircle(img, x+width-radius-1, y+height-radius-1, radius, col)
}
