package service

import (
	"time"

	"petadopt/internal/entity"
	"petadopt/internal/utils"

	"github.com/google/uuid"
)

type JWTAccessIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAccessIssuer) IssueAccessToken(identity Identity) (string, time.Duration, error) {
	if j.Manager == nil {
		return "", 0, ErrInvalidToken
	}
	return j.Manager.IssueAccessToken(identity.UserID.String(), string(identity.Role))
}

func (j JWTAccessIssuer) VerifyAccessToken(token string) (Identity, error) {
	if j.Manager == nil {
		return Identity{}, ErrInvalidToken
	}
	claims, err := j.Manager.ParseAccessToken(token)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	role, ok := entity.ParseUserKind(claims.Role)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: userID, Role: role}, nil
}
