package dto

type ListRoadsResponse struct {
	Roads     []string `json:"roads"`
	Locations []string `json:"locations"`
}

type NeighborsResponse struct {
	Place     string   `json:"place"`
	Neighbors []string `json:"neighbors"`
}

type RouteResponse struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Route []string `json:"route"`
	Hops  int      `json:"hops"`
}
