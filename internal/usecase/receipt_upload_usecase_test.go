package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"fieldops/internal/domain/entities"
	mock_interfaces "fieldops/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var pngHeader = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func TestReceiptUploadUseCase_Upload(t *testing.T) {
	t.Run("content checked before credentials", func(t *testing.T) {
		uc := NewReceiptUploadUseCase(nil, nil)
		if _, err := uc.Upload(context.Background(), "team-1", "x", "a.txt", []byte("hello")); !errors.Is(err, entities.ErrReceiptFileUnsupported) {
			t.Fatalf("expected ErrReceiptFileUnsupported, got %v", err)
		}
		if _, err := uc.Upload(context.Background(), "team-1", "x", "a.png", nil); !errors.Is(err, entities.ErrReceiptFileEmpty) {
			t.Fatalf("expected ErrReceiptFileEmpty, got %v", err)
		}
		big := bytes.Repeat([]byte{0xff}, entities.MaxReceiptFileSize+1)
		if _, err := uc.Upload(context.Background(), "team-1", "x", "a.jpg", big); !errors.Is(err, entities.ErrReceiptFileTooLarge) {
			t.Fatalf("expected ErrReceiptFileTooLarge, got %v", err)
		}
	})

	t.Run("repository not configured", func(t *testing.T) {
		uc := NewReceiptUploadUseCase(nil, stubAuth{team: team1})
		if _, err := uc.Upload(context.Background(), "team-1", "x", "a.png", pngHeader); !errors.Is(err, ErrFileRepoNotConfigured) {
			t.Fatalf("expected ErrFileRepoNotConfigured, got %v", err)
		}
	})

	t.Run("stores under team prefix", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		files := mock_interfaces.NewMockIReceiptFileRepository(ctrl)
		uc := NewReceiptUploadUseCase(files, stubAuth{team: team1})

		files.EXPECT().Put(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f entities.ReceiptFile) error {
				if f.ContentType != "image/png" || f.Filename != "recibo.png" || f.Size != int64(len(pngHeader)) {
					t.Fatalf("unexpected file: %+v", f)
				}
				return nil
			})

		f, err := uc.Upload(context.Background(), "team-1", "x", `C:\fotos\recibo.png`, pngHeader)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(f.Key, "receipts/team-1/") {
			t.Fatalf("unexpected key %q", f.Key)
		}
	})
}
