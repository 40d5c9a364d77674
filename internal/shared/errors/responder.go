package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

const internalDetail = "an unexpected error occurred"

// Responder writes problem responses, prefixing relative type URIs with BaseURI.
type Responder struct {
	BaseURI string
}

var defaultResponder = &Responder{}

// Respond writes the problem with its status. Instance defaults to the request path.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && strings.HasPrefix(problem.Type, "/") {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError writes err when it is a ProblemDetail and a generic 500 otherwise.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	// unknown errors may carry storage details
	r.Respond(c, ErrInternal.WithDetail(internalDetail))
}

// Respond writes problem with relative type URIs.
func Respond(c *gin.Context, problem ProblemDetail) {
	defaultResponder.Respond(c, problem)
}

// ErrorMapper translates an application error into a problem.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder consults its mappers, in order, before the default handling.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: &Responder{BaseURI: baseURI},
		mappers:   mappers,
	}
}

// Resolve reports the problem the first matching mapper produces for err.
func (r *ChainedResponder) Resolve(err error) (ProblemDetail, bool) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem, true
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem, true
	}
	return ProblemDetail{}, false
}

func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	if problem, ok := r.Resolve(err); ok {
		r.Respond(c, problem)
		return
	}
	r.Responder.RespondError(c, err)
}
