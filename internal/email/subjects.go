package email

const (
	subjectInquiryReceivedFmt = "New inquiry for %s"
	subjectInquiryAckFmt      = "We received your inquiry about %s"
)
