package usecase

import (
	"context"
	"errors"
	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase/interfaces"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrFileRepoNotConfigured = errors.New("receipt file repository not configured")

// IReceiptUploadUseCase stores a receipt photo/PDF ahead of the payment-receipt call.
//
//   - POST /uploads => Upload()

type IReceiptUploadUseCase interface {
	Upload(ctx context.Context, teamID, password, filename string, data []byte) (entities.ReceiptFile, error)
}

type ReceiptUploadUseCase struct {
	files interfaces.IReceiptFileRepository
	auth  ITeamUseCase
}

var _ IReceiptUploadUseCase = (*ReceiptUploadUseCase)(nil)

func NewReceiptUploadUseCase(files interfaces.IReceiptFileRepository, auth ITeamUseCase) *ReceiptUploadUseCase {
	return &ReceiptUploadUseCase{files: files, auth: auth}
}

func (u *ReceiptUploadUseCase) Upload(ctx context.Context, teamID, password, filename string, data []byte) (entities.ReceiptFile, error) {
	contentType, err := entities.DetectReceiptContentType(data)
	if err != nil {
		log.Printf("[upload][usecase] rejected team_id=%s size=%d err=%v", teamID, len(data), err)
		return entities.ReceiptFile{}, err
	}
	if u.auth == nil {
		return entities.ReceiptFile{}, ErrTeamAuthNotConfigured
	}
	if u.files == nil {
		return entities.ReceiptFile{}, ErrFileRepoNotConfigured
	}
	team, err := u.auth.Authorize(ctx, teamID, password)
	if err != nil {
		return entities.ReceiptFile{}, err
	}

	f := entities.ReceiptFile{
		Key:         "receipts/" + team.ID + "/" + uuid.NewString(),
		Filename:    cleanFilename(filename),
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
		UploadedAt:  time.Now().UTC(),
	}
	if err := u.files.Put(ctx, f); err != nil {
		log.Printf("[upload][usecase] store failed team_id=%s key=%s err=%v", team.ID, f.Key, err)
		return entities.ReceiptFile{}, err
	}
	log.Printf("[upload][usecase] stored team_id=%s key=%s content_type=%s size=%d", team.ID, f.Key, f.ContentType, f.Size)
	return f, nil
}

func cleanFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}
