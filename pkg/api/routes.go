package api

func HomeRoute() Route { return Route{Kind: RouteHome} }

func TaskRoute(taskID int64) Route { return Route{Kind: RouteTask, TaskID: taskID} }

func ReviewRoute(reviewID int64) Route { return Route{Kind: RouteReview, ReviewID: reviewID} }
