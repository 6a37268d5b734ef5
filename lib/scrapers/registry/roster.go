package registry

import (
	"context"
	"log/slog"

	"registry-harvester/lib/htmlutil"
	"registry-harvester/lib/scrapers/registry/core"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ListPage fetches one page of the student roster and returns its rows
// plus the url of the next page. An empty nextUrl means the "Next"
// affordance is gone and the crawl is over. No assumption is made about
// the total number of pages.
func ListPage(ctx context.Context, client *core.Client, pageUrl string) (rows []Row, nextUrl string, err error) {
	ctx, span := tracer.Start(ctx, "ListPage")
	defer span.End()
	span.SetAttributes(attribute.String("url", pageUrl))

	page, err := client.Fetch(ctx, pageUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, "", err
	}
	doc, err := page.Document()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, "", err
	}

	table := doc.Find(rosterTableSelector)
	if table.Length() == 0 {
		slog.WarnContext(ctx, "no student table found on page", "url", pageUrl)
		return nil, "", nil
	}

	table.Find(rosterRowSelector).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < minRosterColumns {
			slog.WarnContext(ctx, "dropping short roster row",
				"url", pageUrl,
				"columns", cells.Length(),
			)
			return
		}
		rows = append(rows, Row{
			SchoolCode:    htmlutil.Text(cells.Eq(rosterSchoolColumn)),
			StudentNumber: htmlutil.Text(cells.Eq(rosterNumberColumn)),
			FullName:      htmlutil.Text(cells.Eq(rosterNameColumn)),
			StatusText:    htmlutil.Text(cells.Eq(rosterStatusColumn)),
		})
	})

	nextUrl, _ = htmlutil.AnchorHrefByText(doc, nextPageText)
	return rows, nextUrl, nil
}
