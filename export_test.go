package konvert

const MaxDepth = maxDepth
