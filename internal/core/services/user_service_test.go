package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      *services.UserService
	user         *domain.User
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.user = &domain.User{
		UserID:    uuid.NewString(),
		Name:      "Jean",
		Phone:     "0788111222",
		KYCStatus: domain.KYCPending,
	}
}

func (suite *UserServiceTestSuite) TestUpdateProfile_EmptyRequestRejected() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	_, err := suite.service.UpdateProfile(ctx, suite.user.UserID, dto.UpdateProfileRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateProfile_AppliesProvidedFields() {
	ctx := context.Background()
	name := "Jean Bosco"
	province := "Kigali"

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	updated, err := suite.service.UpdateProfile(ctx, suite.user.UserID, dto.UpdateProfileRequest{Name: &name, Province: &province})

	suite.Require().NoError(err)
	suite.Equal("Jean Bosco", updated.Name)
	suite.Equal("Kigali", updated.KYC.Province)
	suite.Equal("0788111222", updated.Phone)
}

func (suite *UserServiceTestSuite) TestUploadKYCPhoto_PartialUploadStaysPending() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	updated, err := suite.service.UploadKYCPhoto(ctx, suite.user.UserID, dto.UploadKYCPhotoRequest{
		PhotoType: domain.KYCPhotoIDFront,
		PhotoURL:  "https://cdn.example.com/front.jpg",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.KYCPending, updated.KYCStatus)
	suite.Equal("https://cdn.example.com/front.jpg", updated.KYC.IDFrontPhoto)
}

func (suite *UserServiceTestSuite) TestUploadKYCPhoto_ThirdPhotoSubmits() {
	ctx := context.Background()
	suite.user.KYC.IDFrontPhoto = "https://cdn.example.com/front.jpg"
	suite.user.KYC.IDBackPhoto = "https://cdn.example.com/back.jpg"

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	updated, err := suite.service.UploadKYCPhoto(ctx, suite.user.UserID, dto.UploadKYCPhotoRequest{
		PhotoType: domain.KYCPhotoSelfie,
		PhotoURL:  "https://cdn.example.com/selfie.jpg",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.KYCSubmitted, updated.KYCStatus)
}

func (suite *UserServiceTestSuite) TestUploadKYCPhoto_VerifiedStatusNeverRegresses() {
	ctx := context.Background()
	suite.user.KYCStatus = domain.KYCVerified
	suite.user.KYC.IDFrontPhoto = "https://cdn.example.com/front.jpg"
	suite.user.KYC.IDBackPhoto = "https://cdn.example.com/back.jpg"
	suite.user.KYC.SelfiePhoto = "https://cdn.example.com/selfie.jpg"

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	updated, err := suite.service.UploadKYCPhoto(ctx, suite.user.UserID, dto.UploadKYCPhotoRequest{
		PhotoType: domain.KYCPhotoSelfie,
		PhotoURL:  "https://cdn.example.com/retaken.jpg",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.KYCVerified, updated.KYCStatus)
	suite.Equal("https://cdn.example.com/retaken.jpg", updated.KYC.SelfiePhoto)
}

func (suite *UserServiceTestSuite) TestUploadKYCPhoto_UnknownTypeRejected() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.user.UserID).Return(suite.user, nil).Once()

	_, err := suite.service.UploadKYCPhoto(ctx, suite.user.UserID, dto.UploadKYCPhotoRequest{
		PhotoType: domain.KYCPhotoType("PASSPORT"),
		PhotoURL:  "https://cdn.example.com/passport.jpg",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
