package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"myapp_backend/internal/common"
	"myapp_backend/internal/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingRepo struct {
	Repository
}

func (failingRepo) Upsert(context.Context, *Update) (*Profile, error) {
	return nil, errors.New("store unavailable")
}

func newTestStorage(t *testing.T) (*filestorage.FileStorageService, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	fs, err := filestorage.NewFileStorageService(dir, "/uploads", zap.NewNop())
	require.NoError(t, err)
	return fs, dir
}

func newTestService(t *testing.T) (*ServiceImplementation, string) {
	t.Helper()
	repo, _ := newTestRepo(t)
	fs, dir := newTestStorage(t)
	return NewService(repo, fs, zap.NewNop()), dir
}

func newFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename="%s"`, filename))
	h.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["avatar"][0]
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestService_RequiresUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetProfile(ctx, "")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))

	_, err = svc.SaveProfile(ctx, "", map[string]string{FieldFirstName: "x"}, nil)
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestService_GetBeforeAndAfterSave(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = svc.SaveProfile(ctx, "alice", map[string]string{FieldFirstName: "Alice", FieldLastName: "Smith"}, nil)
	require.NoError(t, err)

	p, err = svc.GetProfile(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "alice", p.UserID)
	assert.Equal(t, "Alice", p.FirstName)
	assert.Equal(t, "Smith", p.LastName)
}

func TestService_SaveForcesSessionUserID(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.SaveProfile(context.Background(), "alice", map[string]string{"userId": "mallory", FieldFirstName: "A"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.UserID)
}

func TestService_SecondSaveWins(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveProfile(ctx, "alice", map[string]string{FieldFirstName: "Alice", FieldHobbies: "chess"}, nil)
	require.NoError(t, err)
	p, err := svc.SaveProfile(ctx, "alice", map[string]string{FieldFirstName: "Alicia"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Alicia", p.FirstName)
	assert.Equal(t, "chess", p.Hobbies)
}

func TestService_SaveDOB(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// the age rule belongs to the form; the service stores what it gets
	p, err := svc.SaveProfile(ctx, "kid", map[string]string{FieldDOB: "2010-01-01"}, nil)
	require.NoError(t, err)
	require.NotNil(t, p.DOB)
	assert.Equal(t, 2010, p.DOB.Year())

	p, err = svc.SaveProfile(ctx, "kid", map[string]string{FieldDOB: "not-a-date"}, nil)
	require.NoError(t, err)
	assert.Nil(t, p.DOB)
}

func TestService_SaveAvatar(t *testing.T) {
	svc, dir := newTestService(t)
	ctx := context.Background()

	p, err := svc.SaveProfile(ctx, "alice", map[string]string{FieldFirstName: "Alice"}, newFileHeader(t, "me.png", "png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.Avatar, "/uploads/"))
	assert.True(t, strings.HasSuffix(p.Avatar, "-me.png"))
	assert.Equal(t, 1, countFiles(t, dir))

	again, err := svc.SaveProfile(ctx, "alice", map[string]string{FieldLastName: "Smith"}, nil)
	require.NoError(t, err)
	assert.Equal(t, p.Avatar, again.Avatar)
}

func TestService_RemovesAvatarWhenStoreFails(t *testing.T) {
	fs, dir := newTestStorage(t)
	svc := NewService(failingRepo{}, fs, zap.NewNop())

	_, err := svc.SaveProfile(context.Background(), "alice", nil, newFileHeader(t, "me.png", "png"))
	require.Error(t, err)
	assert.Equal(t, 0, countFiles(t, dir))
}

func TestParseDOB(t *testing.T) {
	tests := []struct {
		raw  string
		want *time.Time
	}{
		{raw: "1990-05-01", want: ptrTime(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC))},
		{raw: "1990-05-01T10:00:00Z", want: ptrTime(time.Date(1990, 5, 1, 10, 0, 0, 0, time.UTC))},
		{raw: " 1990-05-01 ", want: ptrTime(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC))},
		{raw: "01/05/1990"},
		{raw: ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseDOB(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got))
		})
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
