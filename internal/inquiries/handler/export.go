package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"estate_portal_backend/internal/inquiries/transport"
	"estate_portal_backend/platform/httpkit"
	"estate_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const exportTimeLayout = "2006-01-02 15:04:05"

var exportHeaders = []string{
	"Inquiry ID",
	"Received At",
	"Listing",
	"Name",
	"Email",
	"Phone",
	"Inquiry Type",
	"Budget",
	"Preferred Contact",
	"Status",
	"Message",
}

// Export streams the builder's inquiries as CSV.
// GET /api/v1/builder/inquiries/export
func (h *Handler) Export(c *gin.Context) {
	var req transport.ExportInquiriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Fields(err))
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	export, err := h.svc.ExportForBuilder(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	if export.Truncated {
		c.Header("X-Export-Truncated", "true")
	}
	writer, ok := startCsvResponse(c, export.Timezone)
	if !ok {
		return
	}
	for _, item := range export.Items {
		if err := writer.Write(inquiryRow(item, export.Location)); err != nil {
			return
		}
	}
	writer.Flush()
	_ = writer.Error()
}

func inquiryRow(in transport.InquiryResponse, loc *time.Location) []string {
	return []string{
		in.ID.String(),
		in.CreatedAt.In(loc).Format(exportTimeLayout),
		in.ListingName,
		in.Name,
		in.Email,
		in.Phone,
		in.InquiryType,
		in.Budget,
		in.PreferredContact,
		in.Status,
		in.Message,
	}
}

func startCsvResponse(c *gin.Context, tzName string) (*csv.Writer, bool) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=inquiries-%s.csv", time.Now().UTC().Format("20060102")))
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write([]string{fmt.Sprintf("Parameters:TimeZone=%s", tzName)}); err != nil {
		return nil, false
	}
	if err := writer.Write(exportHeaders); err != nil {
		return nil, false
	}
	return writer, true
}
