package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// ShareURL is the public page of a listing.
func (s *Service) ShareURL(id uuid.UUID) string {
	return s.baseURL + "/properties/" + id.String()
}

// ShareQR renders the public URL of an active listing as a PNG QR code.
func (s *Service) ShareQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := s.active(ctx, id); err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(s.ShareURL(id), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode share qr: %w", err)
	}
	return png, nil
}
