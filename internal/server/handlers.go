package server

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/jimezsa/hirenova/internal/jobsearch"
	"github.com/jimezsa/hirenova/internal/models"
	"github.com/jimezsa/hirenova/internal/params"
	"github.com/jimezsa/hirenova/internal/present"
	"github.com/jimezsa/hirenova/internal/session"
)

// filter query keys, matching the upstream parameter names
var filterKeys = []string{
	"keywords",
	"locationId",
	"experienceLevel",
	"onsiteRemote",
	"titleIds",
	"functionIds",
	"industryIds",
	"sort",
}

// run builds a fresh session for the request and fetches the asked page.
func (s *Server) run(c fiber.Ctx) (*session.Session, error) {
	page, err := pageParam(c)
	if err != nil {
		return nil, err
	}

	sess := session.New(s.opts.Searcher, session.Options{
		Defaults: s.opts.Defaults,
		Logger:   s.opts.Logger.With().Str("http_request_id", requestID(c)).Logger(),
	})
	if err := sess.Open(c.Context(), patchFromQuery(c), page); err != nil {
		if errors.Is(err, params.ErrInvalidPage) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "page must be a positive integer in range")
		}
		return nil, err
	}
	return sess, nil
}

func (s *Server) handlePage(c fiber.Ctx) error {
	sess, err := s.run(c)
	if err != nil {
		return err
	}

	current := sess.Params()
	var buf bytes.Buffer
	err = present.Render(&buf, sess.View(), present.FormatHTML, present.WriteOptions{
		ShowDegraded: s.opts.ShowDegraded,
		PageLink: func(page int) string {
			return "/?" + pageQuery(current, page)
		},
	})
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (s *Server) handleAPI(c fiber.Ctx) error {
	sess, err := s.run(c)
	if err != nil {
		return err
	}
	if rid := sess.Outcome().RequestID; rid != "" {
		c.Set("X-Upstream-Request-ID", rid)
	}
	return c.JSON(present.Document(sess.View(), present.WriteOptions{ShowDegraded: s.opts.ShowDegraded}))
}

// patchFromQuery sets only the keys present in the query string, so an
// explicitly empty value clears a configured default.
func patchFromQuery(c fiber.Ctx) params.Patch {
	args := c.Request().URI().QueryArgs()
	value := func(key string) (string, bool) {
		if !args.Has(key) {
			return "", false
		}
		return string(args.Peek(key)), true
	}

	var patch params.Patch
	for _, key := range filterKeys {
		raw, ok := value(key)
		if !ok {
			continue
		}
		switch key {
		case "keywords":
			patch.Keywords = params.String(raw)
		case "locationId":
			patch.LocationID = params.String(raw)
		case "experienceLevel":
			patch.ExperienceLevel = params.Experience(raw)
		case "onsiteRemote":
			patch.OnsiteRemote = params.Work(raw)
		case "titleIds":
			patch.TitleIDs = params.String(raw)
		case "functionIds":
			patch.FunctionIDs = params.String(raw)
		case "industryIds":
			patch.IndustryIDs = params.String(raw)
		case "sort":
			if raw != "" {
				patch.Sort = params.SortOrder(raw)
			}
		}
	}
	return patch
}

// pageQuery keeps the active filters and swaps start for page.
func pageQuery(p models.SearchParams, page int) string {
	values := jobsearch.BuildQuery(p)
	values.Del("start")
	values.Set("page", strconv.Itoa(page))
	return values.Encode()
}
