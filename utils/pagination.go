package utils

import (
	"net/http"
	"strconv"
)

// PageSize is the fixed page size applied to every listing endpoint.
const PageSize = 10

// Page carries the page number and the matching skip/limit for a Mongo find.
type Page struct {
	Number int
	Skip   int64
	Limit  int64
}

// ParsePage reads the ?page= query parameter. Missing or malformed values
// fall back to page 1.
func ParsePage(r *http.Request) Page {
	number, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || number < 1 {
		number = 1
	}
	return Page{
		Number: number,
		Skip:   int64(number-1) * PageSize,
		Limit:  PageSize,
	}
}

// PageEnvelope is the paginated response body: total count, next/previous
// page links and the current page of results.
type PageEnvelope struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// Paginated builds the envelope for one page of a listing. Next and previous
// links reuse the request URL with the page parameter swapped out.
func Paginated(r *http.Request, page Page, count int64, results interface{}) PageEnvelope {
	env := PageEnvelope{Count: count, Results: results}

	lastPage := int((count + PageSize - 1) / PageSize)
	if page.Number < lastPage {
		env.Next = pageLink(r, page.Number+1)
	}
	if page.Number > 1 {
		env.Previous = pageLink(r, page.Number-1)
	}
	return env
}

func pageLink(r *http.Request, number int) *string {
	u := *r.URL
	q := u.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
