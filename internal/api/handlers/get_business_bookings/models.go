package get_business_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день; from/to задают период, date имеет приоритет.
func ToServiceRequest(businessID int64, userID int64, query url.Values) (*models.GetBusinessBookingsRequest, error) {
	req := &models.GetBusinessBookingsRequest{
		UserID:     userID,
		BusinessID: businessID,
	}

	if s := query.Get("professionalId"); s != "" {
		professionalID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid professionalId: %w", err)
		}
		req.ProfessionalID = &professionalID
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	if s := query.Get("date"); s != "" {
		date, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
		return req, nil
	}

	if s := query.Get("from"); s != "" {
		from, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.StartDate = &from
	}

	if s := query.Get("to"); s != "" {
		to, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.EndDate = &to
	}

	return req, nil
}
