package iocache

import (
	"fmt"
	"io"

	"github.com/huangsam/moodmixer/schema"
)

// PrintStoreStatus prints profile store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	_, _ = fmt.Fprintf(w, "Favorites: %d\n", status.Favorites)
	_, _ = fmt.Fprintf(w, "Recents: %d\n", status.Recents)
	_, _ = fmt.Fprintf(w, "Orders: %d\n", status.Orders)
	if status.Orders > 0 {
		_, _ = fmt.Fprintf(w, "Last Order: %s\n", status.LastOrderTime.Format("2006-01-02 15:04:05"))
	}
	if status.Connected {
		_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
	}
}
