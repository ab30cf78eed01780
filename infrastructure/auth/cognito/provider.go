package cognito

import (
	"context"
	"errors"

	"library-backend/application/ports"
	apperrors "library-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"go.uber.org/zap"
)

// Provider implements ports.IdentityProvider against an AWS Cognito user pool.
type Provider struct {
	client   *cognitoidentityprovider.Client
	clientID string
	logger   *zap.Logger
}

// NewProvider creates a Cognito-backed identity provider.
func NewProvider(client *cognitoidentityprovider.Client, clientID string, logger *zap.Logger) ports.IdentityProvider {
	return &Provider{
		client:   client,
		clientID: clientID,
		logger:   logger,
	}
}

// SignUp registers a new user in the pool.
func (p *Provider) SignUp(ctx context.Context, email, password, name string) (*ports.SignUpResult, error) {
	attrs := []types.AttributeType{
		{Name: aws.String("email"), Value: aws.String(email)},
	}
	if name != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("name"), Value: aws.String(name)})
	}

	out, err := p.client.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId:       aws.String(p.clientID),
		Username:       aws.String(email),
		Password:       aws.String(password),
		UserAttributes: attrs,
	})
	if err != nil {
		return nil, p.mapError("sign up", err)
	}

	result := &ports.SignUpResult{
		UserID:               aws.ToString(out.UserSub),
		ConfirmationRequired: !out.UserConfirmed,
	}
	if out.CodeDeliveryDetails != nil {
		result.Destination = aws.ToString(out.CodeDeliveryDetails.Destination)
	}
	return result, nil
}

// Login authenticates a user with email and password.
func (p *Provider) Login(ctx context.Context, email, password string) (*ports.TokenSet, error) {
	out, err := p.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		ClientId: aws.String(p.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, p.mapError("login", err)
	}
	if out.AuthenticationResult == nil {
		return nil, apperrors.NewUnauthorizedError("additional authentication challenge required")
	}

	return &ports.TokenSet{
		AccessToken:  aws.ToString(out.AuthenticationResult.AccessToken),
		IDToken:      aws.ToString(out.AuthenticationResult.IdToken),
		RefreshToken: aws.ToString(out.AuthenticationResult.RefreshToken),
		TokenType:    aws.ToString(out.AuthenticationResult.TokenType),
		ExpiresIn:    out.AuthenticationResult.ExpiresIn,
	}, nil
}

// Confirm completes sign-up with the emailed confirmation code.
func (p *Provider) Confirm(ctx context.Context, email, code string) error {
	_, err := p.client.ConfirmSignUp(ctx, &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return p.mapError("confirm sign up", err)
	}
	return nil
}

func (p *Provider) mapError(operation string, err error) error {
	var usernameExists *types.UsernameExistsException
	if errors.As(err, &usernameExists) {
		return apperrors.NewConflictError("an account with this email already exists")
	}

	var notAuthorized *types.NotAuthorizedException
	if errors.As(err, &notAuthorized) {
		return apperrors.NewUnauthorizedError("invalid email or password")
	}

	var notConfirmed *types.UserNotConfirmedException
	if errors.As(err, &notConfirmed) {
		return apperrors.NewUnauthorizedError("account not confirmed").WithCode("USER_NOT_CONFIRMED")
	}

	var userNotFound *types.UserNotFoundException
	if errors.As(err, &userNotFound) {
		return apperrors.NewNotFoundError("user")
	}

	var codeMismatch *types.CodeMismatchException
	if errors.As(err, &codeMismatch) {
		return apperrors.NewValidationError("invalid confirmation code")
	}

	var expiredCode *types.ExpiredCodeException
	if errors.As(err, &expiredCode) {
		return apperrors.NewValidationError("confirmation code has expired")
	}

	var invalidPassword *types.InvalidPasswordException
	if errors.As(err, &invalidPassword) {
		return apperrors.NewValidationError("password does not meet the policy requirements")
	}

	var tooMany *types.TooManyRequestsException
	if errors.As(err, &tooMany) {
		return apperrors.NewRateLimitError("too many requests, try again later")
	}

	p.logger.Error("cognito request failed", zap.String("operation", operation), zap.Error(err))
	return apperrors.NewExternalError("cognito", err)
}
