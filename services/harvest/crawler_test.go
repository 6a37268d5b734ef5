package harvest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"registry-harvester/lib/scrapers/registry"
	"registry-harvester/lib/scrapers/registry/core"
	"registry-harvester/lib/telemetry"

	"github.com/stretchr/testify/require"
)

// fakeRegistry serves a two page roster with three students:
//
//	901000001 has a full transcript
//	901000002 has an empty transcript but a program list to fall back to
//	901000003 is missing personal details and stays incomplete
func fakeRegistry(t testing.TB) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/"+registry.ListPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") == "21" {
			fmt.Fprint(w, `<html><body><table id="ewlistmain">
<tr class="ewTableRow"><td>3</td><td>FCMB</td><td>2020</td><td>901000003</td><td>Thabo Mokoena</td><td>BABR</td><td>Active</td></tr>
</table></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body><table id="ewlistmain">
<tr class="ewTableRow"><td>1</td><td>FICT</td><td>2021</td><td>901000001</td><td>John Michael Doe</td><td>BSIT</td><td>Active</td></tr>
<tr class="ewTableAltRow"><td>2</td><td>FDI</td><td>2022</td><td>901000002</td><td>Jane Smith</td><td>DBM</td><td>Active</td></tr>
</table>
<a href="`+registry.ListPath+`?start=21">Next</a>
</body></html>`)
	})

	mux.HandleFunc("/Officialreport.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("StudentID") != "901000001" {
			fmt.Fprint(w, `<html><body><table><tr><td>No records found</td></tr></table></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body><table>
<tr><td>Program:</td><td>BSc in Information Technology</td></tr>
<tr><td>Semester:</td><td>Semester 2, Year 3</td></tr>
<tr><td>Results:</td><td>3.0 / 3.4</td></tr>
</table></body></html>`)
	})

	mux.HandleFunc("/r_stdprogramlist.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("StudentID") == "901000003" {
			fmt.Fprint(w, `<html><body><table id="ewlistmain"></table></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body><table id="ewlistmain">
<tr class="ewTableRow"><td>1</td><td>Diploma in Business Management</td><td>Year 2</td><td>NMDS</td></tr>
</table></body></html>`)
	})

	mux.HandleFunc("/r_stdpersonalview.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("StudentID") == "901000003" {
			fmt.Fprint(w, `<html><body><table><tr><td>No records found</td></tr></table></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body><table>
<tr><td>Nationality</td><td>Mosotho</td></tr>
<tr><td>Sex</td><td>Male</td></tr>
<tr><td>Birthdate</td><td>1999-04-12</td></tr>
<tr><td>Birth Place</td><td>Maseru</td></tr>
</table></body></html>`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestCrawler(t testing.TB, server *httptest.Server) Crawler {
	client, err := core.NewClient(context.Background(), core.ClientOptions{
		BaseUrl: server.URL,
	})
	require.NoError(t, err)
	return Crawler{
		Client: client,
		Store:  newTestStore(t),
		Policy: DefaultPolicy(),
	}
}

func TestCrawlerRun(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:harvest")
	defer cleanup()

	server := fakeRegistry(t)
	crawler := newTestCrawler(t, server)
	ctx := context.Background()

	counters, err := crawler.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, Counters{
		Processed:  3,
		Saved:      2,
		Incomplete: 1,
	}, counters)

	records, err := crawler.Store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// the full transcript student
	require.Equal(t, "901000001", records[0].StudentNumber)
	require.Equal(t, "BSc in Information Technology", records[0].Program)
	require.NotNil(t, records[0].OverallMark)
	require.Equal(t, 85, *records[0].OverallMark)
	require.Equal(t, GraduatePassed, records[0].GraduateStatus)

	// the fallback student: program list data, no mark
	require.Equal(t, "901000002", records[1].StudentNumber)
	require.Equal(t, "Diploma in Business Management", records[1].Program)
	require.Nil(t, records[1].OverallMark)
	require.Equal(t, GraduateFailed, records[1].GraduateStatus)
	require.Equal(t, SponsorGovernment, records[1].SponsorType)
}

func TestCrawlerRerunCountsDuplicates(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:harvest")
	defer cleanup()

	server := fakeRegistry(t)
	crawler := newTestCrawler(t, server)
	ctx := context.Background()

	_, err := crawler.Run(ctx)
	require.NoError(t, err)

	counters, err := crawler.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, Counters{
		Processed:  3,
		Duplicates: 2,
		Incomplete: 1,
	}, counters)

	records, err := crawler.Store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestCrawlerPageCap(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:harvest")
	defer cleanup()

	// a roster whose "Next" affordance loops back to itself
	mux := http.NewServeMux()
	mux.HandleFunc("/"+registry.ListPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><table id="ewlistmain">
<tr class="ewTableRow"><td>1</td><td>FICT</td><td>2021</td><td>901000001</td><td>John Doe</td><td>BSIT</td><td>Active</td></tr>
</table>
<a href="`+registry.ListPath+`">Next</a>
</body></html>`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><table><tr><td>No records found</td></tr></table></body></html>`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	crawler := newTestCrawler(t, server)
	crawler.MaxPages = 3

	counters, err := crawler.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, counters.Processed)
}

func TestCrawlerAbortsOnRosterFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:harvest")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// tear the connection down mid-request
		conn, _, err := http.NewResponseController(w).Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	t.Cleanup(server.Close)

	crawler := newTestCrawler(t, server)

	_, err := crawler.Run(context.Background())
	require.Error(t, err)
}

func TestCrawlerHonorsContextCancellation(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:harvest")
	defer cleanup()

	server := fakeRegistry(t)
	crawler := newTestCrawler(t, server)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := crawler.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
