package resource

import "fmt"

// Identities generates cache keys for requests that do not name one.
// It is not safe for concurrent use; the Manager calls it under its lock.
type Identities struct {
	next int
}

// Next returns "autores_<n>" for NoRawID, otherwise "genres_<rawID>" so
// repeated requests for the same raw id land on the same entry.
func (g *Identities) Next(rawID int) string {
	if rawID == NoRawID {
		id := fmt.Sprintf("autores_%d", g.next)
		g.next++
		return id
	}
	return fmt.Sprintf("genres_%d", rawID)
}
