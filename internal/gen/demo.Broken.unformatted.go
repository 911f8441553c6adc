func (x *Token) Broken( {}