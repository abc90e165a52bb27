package usecase

import (
	"context"
	"io"
)

// FirebaseAuthClient is the slice of the Firebase auth surface the usecases
// depend on.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	SignInWithEmailPasswordWithRefresh(email, password string) (string, string, error)
	RefreshIdToken(refreshToken string) (string, string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	TestConnection(ctx context.Context) error
}

// StorageClient abstracts blob storage for storefront media.
type StorageClient interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	GenerateSignedUploadURL(ctx context.Context, fileType, folder string, isPublic bool) (string, string, error)
}
