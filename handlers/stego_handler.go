// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"stegochat-backend/config"
	"stegochat-backend/crypto"
	"stegochat-backend/imaging"
	"stegochat-backend/metrics"
	"stegochat-backend/models"
	"stegochat-backend/pngparser"
	"stegochat-backend/stego"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	operationEmbed   = "embed"
	operationExtract = "extract"
)

// minPSNR is the quality floor below which an embed is logged as visible.
const minPSNR = 40.0

type StegoHandler struct {
	imageDecoder   *imaging.ImageDecoder
	lsb            *stego.LSBSteganography
	metrics        *metrics.Metrics
	maxUploadBytes int64
}

func NewStegoHandler(cfg *config.Config, m *metrics.Metrics) *StegoHandler {
	return &StegoHandler{
		imageDecoder:   imaging.NewImageDecoder(cfg.Stego.MaxPixels),
		lsb:            stego.NewLSBSteganography(&models.StegoConfig{AllowTruncation: cfg.Stego.AllowTruncation}),
		metrics:        m,
		maxUploadBytes: cfg.Server.MaxUploadBytes,
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Steganography API is running",
		"version": "1.0.0",
	})
}

// EmbedMessage hides the "message" form field in the uploaded "image" and
// streams the result back as PNG.
func (h *StegoHandler) EmbedMessage(c *gin.Context) {
	requestID := uuid.NewString()
	c.Header("X-Request-ID", requestID)

	if status, err := h.parseForm(c); err != nil {
		c.JSON(status, models.EmbedResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	message := c.PostForm("message")
	imageData, err := readUpload(c, "image")
	if err != nil || message == "" {
		c.JSON(http.StatusBadRequest, models.EmbedResponse{
			Success: false,
			Message: "Image and message are required",
		})
		return
	}

	payload := []byte(message)
	if c.PostForm("use_encryption") == "true" {
		passkey := c.PostForm("passkey")
		if err := crypto.ValidateKey(passkey); err != nil {
			c.JSON(http.StatusBadRequest, models.EmbedResponse{
				Success: false,
				Message: fmt.Sprintf("Invalid passkey: %v", err),
			})
			return
		}

		sealed, err := crypto.NewMessageCipher(passkey).Encrypt(payload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.EmbedResponse{
				Success: false,
				Message: fmt.Sprintf("Failed to encrypt message: %v", err),
			})
			return
		}
		payload = []byte(sealed)
	}

	original, metadata, err := h.imageDecoder.DecodeImage(imageData)
	if err != nil {
		c.JSON(decodeStatus(err), models.EmbedResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode image: %v", err),
		})
		return
	}

	stegoImage := imaging.ToNRGBA(original)
	pixels := stego.NewNRGBAPixels(stegoImage)
	capacity, err := h.embed(pixels, payload)
	if err != nil {
		status := http.StatusInternalServerError
		msg := fmt.Sprintf("Failed to embed message: %v", err)
		switch {
		case errors.Is(err, stego.ErrInvalidImage):
			status = http.StatusBadRequest
		case errors.Is(err, stego.ErrCapacityExceeded):
			status = http.StatusBadRequest
			msg = fmt.Sprintf("Message too large. Maximum capacity: %d bytes, required: %d bytes",
				capacity.MaxMessageBytes, len(payload))
		}
		c.JSON(status, models.EmbedResponse{Success: false, Message: msg})
		return
	}

	output, err := imaging.EncodePNG(stegoImage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.EmbedResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to encode stego image: %v", err),
		})
		return
	}

	psnr := imaging.CalculatePSNR(original, stegoImage)
	logEmbedQuality(requestID, psnr, metadata)

	outputFilename := fmt.Sprintf("stego_%s.png", requestID)

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))
	c.Header("X-Stego-Method", "Blue channel LSB")
	c.Header("X-Stego-Message", "Steganography successful")
	c.Header("X-Stego-PSNR", imaging.FormatPSNR(psnr))
	c.Header("X-Stego-Capacity", fmt.Sprintf("%d", capacity.MaxMessageBytes))
	c.Header("X-Stego-Bits", fmt.Sprintf("%d", len(payload)*8))

	c.Data(http.StatusOK, "image/png", output)
}

func logEmbedQuality(requestID string, psnr float64, metadata *models.ImageMetadata) {
	if !imaging.ValidatePSNR(psnr, minPSNR) {
		log.Printf("request %s: PSNR %s dB is below %.0f dB", requestID, imaging.FormatPSNR(psnr), minPSNR)
	}
	if metadata != nil && metadata.Lossy {
		log.Printf("request %s: %s cover converted to PNG, original was lossy", requestID, metadata.Format)
	}
}

// embed checks the image, writes payload into pixels and records the
// operation. The returned capacity is valid whenever the image is.
func (h *StegoHandler) embed(pixels stego.PixelAccess, payload []byte) (stego.Capacity, error) {
	capacity, err := stego.CalculateCapacity(pixels)
	if err != nil {
		return capacity, err
	}

	start := time.Now()
	err = h.lsb.Embed(pixels, payload)
	h.metrics.RecordCodecOperation(operationEmbed, err, time.Since(start), len(payload)*8)
	return capacity, err
}

// ExtractMessage recovers the text hidden in the uploaded "image".
func (h *StegoHandler) ExtractMessage(c *gin.Context) {
	c.Header("X-Request-ID", uuid.NewString())

	if status, err := h.parseForm(c); err != nil {
		c.JSON(status, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	imageData, err := readUpload(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ExtractResponse{
			Success: false,
			Message: "Image is required",
		})
		return
	}

	useEncryption := c.PostForm("use_encryption") == "true"
	passkey := c.PostForm("passkey")
	if useEncryption {
		if err := crypto.ValidateKey(passkey); err != nil {
			c.JSON(http.StatusBadRequest, models.ExtractResponse{
				Success: false,
				Message: fmt.Sprintf("Invalid passkey: %v", err),
			})
			return
		}
	}

	img, _, err := h.imageDecoder.DecodeImage(imageData)
	if err != nil {
		c.JSON(decodeStatus(err), models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode image: %v", err),
		})
		return
	}

	start := time.Now()
	message, err := h.lsb.Extract(stego.NewNRGBAPixels(img))
	h.metrics.RecordCodecOperation(operationExtract, err, time.Since(start), len(message)*8)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, stego.ErrInvalidEncoding), errors.Is(err, stego.ErrBoundsExhausted):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, stego.ErrInvalidImage):
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ExtractResponse{
			Success: false,
			Message: fmt.Sprintf("Error extracting message: %v", err),
		})
		return
	}

	if useEncryption {
		plain, err := crypto.NewMessageCipher(passkey).Decrypt(message)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.ExtractResponse{
				Success: false,
				Message: fmt.Sprintf("Error decrypting message: %v", err),
			})
			return
		}
		message = string(plain)
	}

	c.JSON(http.StatusOK, models.ExtractResponse{
		Success: true,
		Message: message,
	})
}

// InspectImage reports format details and capacity of the uploaded "image".
func (h *StegoHandler) InspectImage(c *gin.Context) {
	if status, err := h.parseForm(c); err != nil {
		c.JSON(status, models.InspectResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	imageData, err := readUpload(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.InspectResponse{
			Success: false,
			Message: "Image is required",
		})
		return
	}

	img, metadata, err := h.imageDecoder.DecodeImage(imageData)
	if err != nil {
		c.JSON(decodeStatus(err), models.InspectResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode image: %v", err),
		})
		return
	}

	capacity, err := stego.CalculateCapacity(stego.NewNRGBAPixels(img))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.InspectResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to calculate capacity: %v", err),
		})
		return
	}

	resp := models.InspectResponse{
		Success:  true,
		Metadata: metadata,
		Capacity: CapacityInfo(capacity),
	}
	if metadata.Format == "png" {
		if file, err := pngparser.ParsePNG(imageData); err == nil {
			resp.PNG = pngparser.Summary(file)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// CapacityInfo converts a codec capacity into its JSON form.
func CapacityInfo(c stego.Capacity) *models.CapacityInfo {
	return &models.CapacityInfo{
		TotalBits:       c.TotalBits,
		HeaderBits:      c.HeaderBits,
		PayloadBits:     c.PayloadBits,
		MaxMessageBytes: c.MaxMessageBytes,
	}
}

func (h *StegoHandler) parseForm(c *gin.Context) (int, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return http.StatusRequestEntityTooLarge, err
		}
		return http.StatusBadRequest, err
	}
	return http.StatusOK, nil
}

func readUpload(c *gin.Context, field string) ([]byte, error) {
	file, _, err := c.Request.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}
	return data, nil
}

func decodeStatus(err error) int {
	if errors.Is(err, imaging.ErrImageTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
