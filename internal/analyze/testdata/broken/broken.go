package broken

//autojson:deserialize
type Response struct {
	id int64
}

func autoValue_Response(id int64) Response {
	return Response{ident: id}
}
