package http

import (
	"github.com/gin-gonic/gin"

	"eod-extractor/pkg/response"
)

// Parse godoc
// @Summary     Parse a single email body
// @Description Runs end-of-day extraction over a raw email body without touching any mailbox.
// @Tags        Extraction
// @Accept      json
// @Produce     json
// @Param       body body parseReq true "Email content"
// @Success     200 {object} parseResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/extractions/parse [POST]
func (h *handler) Parse(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processParseReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ExtractText(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ExtractText: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newParseResp(output))
}

// Run godoc
// @Summary     Extract reports from the configured mailbox
// @Description Fetches mail between start_date (inclusive) and end_date (exclusive) and extracts every end-of-day section found.
// @Tags        Extraction
// @Accept      json
// @Produce     json
// @Param       body body runReq true "Date range"
// @Success     200 {object} runResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Failure     503 {object} response.Resp "No mail source configured"
// @Router      /api/v1/extractions/run [POST]
func (h *handler) Run(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRunReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ExtractRange(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ExtractRange: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newRunResp(output))
}
