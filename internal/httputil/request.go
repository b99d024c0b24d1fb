package httputil

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BindData binds the JSON body of the request to data.
//
// Fields that are not part of the body keep their value, so binding onto
// a populated struct only replaces what the request sets.
func BindData(c *gin.Context, data any) error {
	err := c.ShouldBindJSON(data)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return ErrRequestBodyEmpty
	}

	log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	return fmt.Errorf("%w: %w", ErrInvalidBody, err)
}

// BindQuery binds the query string to data.
func BindQuery(c *gin.Context, data any) error {
	err := c.ShouldBindQuery(data)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidQueryString, err.Error())
	}

	return nil
}
