package roomhandler

type RoomResponse struct {
	Name    string `json:"name"    example:"lobby"`
	Members int    `json:"members" example:"2"`
} // @name RoomResponse

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse

type ListRoomsQuery struct {
	Limit  int `form:"limit,default=50" binding:"gte=0,lte=500"`
	Offset int `form:"offset,default=0" binding:"gte=0"`
} // @name ListRoomsQuery
