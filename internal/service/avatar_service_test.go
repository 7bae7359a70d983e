package service

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskman/internal/errors"
	"taskman/internal/model"
)

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	assert.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestAvatarService_Upload(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		data         func(t *testing.T) []byte
		setupMock    func(*MockUserRepository)
		wantValidate string
		wantErr      error
	}{
		{
			name:     "wide jpg is normalized to a 250x250 png",
			filename: "photo.jpg",
			data:     func(t *testing.T) []byte { return encodeTestJPEG(t, 640, 480) },
			setupMock: func(users *MockUserRepository) {
				users.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "tall jpeg accepted too",
			filename: "photo.JPEG",
			data:     func(t *testing.T) []byte { return encodeTestJPEG(t, 120, 600) },
			setupMock: func(users *MockUserRepository) {
				users.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:         "gif rejected before any decoding",
			filename:     "anim.gif",
			data:         func(t *testing.T) []byte { return []byte("GIF89a") },
			setupMock:    func(users *MockUserRepository) {},
			wantValidate: "file should be an image",
		},
		{
			name:         "oversized upload rejected",
			filename:     "huge.jpg",
			data:         func(t *testing.T) []byte { return make([]byte, 1_100_000) },
			setupMock:    func(users *MockUserRepository) {},
			wantValidate: "file too large",
		},
		{
			name:      "undecodable bytes with a valid extension",
			filename:  "broken.png",
			data:      func(t *testing.T) []byte { return []byte("not an image") },
			setupMock: func(users *MockUserRepository) {},
			wantErr:   errors.ErrImageDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)

			svc := NewAvatarService(users, nil)
			user := &model.User{ID: uuid.New()}
			err := svc.Upload(context.Background(), user, tt.filename, tt.data(t))

			if tt.wantValidate != "" {
				var validation *errors.ValidationError
				assert.ErrorAs(t, err, &validation)
				assert.Equal(t, tt.wantValidate, validation.Message)
				users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}

			assert.NoError(t, err)
			img, err := png.Decode(bytes.NewReader(user.Avatar))
			assert.NoError(t, err)
			assert.Equal(t, 250, img.Bounds().Dx())
			assert.Equal(t, 250, img.Bounds().Dy())
			users.AssertExpectations(t)
		})
	}
}

func TestAvatarService_Remove(t *testing.T) {
	t.Run("clears an existing avatar", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewAvatarService(users, nil)
		user := &model.User{ID: uuid.New(), Avatar: []byte{1, 2, 3}}
		assert.NoError(t, svc.Remove(context.Background(), user))
		assert.Nil(t, user.Avatar)
		users.AssertExpectations(t)
	})

	t.Run("fails when no avatar is present", func(t *testing.T) {
		users := new(MockUserRepository)

		svc := NewAvatarService(users, nil)
		err := svc.Remove(context.Background(), &model.User{ID: uuid.New()})

		var validation *errors.ValidationError
		assert.ErrorAs(t, err, &validation)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAvatarService_Fetch(t *testing.T) {
	id := uuid.New()

	t.Run("returns stored bytes", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, id).Return(&model.User{ID: id, Avatar: []byte{9, 9}}, nil)

		svc := NewAvatarService(users, nil)
		data, err := svc.Fetch(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, []byte{9, 9}, data)
	})

	t.Run("missing user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAvatarService(users, nil)
		_, err := svc.Fetch(context.Background(), id)
		assert.ErrorIs(t, err, errors.ErrAvatarNotFound)
	})

	t.Run("user without avatar", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, id).Return(&model.User{ID: id}, nil)

		svc := NewAvatarService(users, nil)
		_, err := svc.Fetch(context.Background(), id)
		assert.ErrorIs(t, err, errors.ErrAvatarNotFound)
	})
}
